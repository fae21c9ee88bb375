package dto

// DashboardResponse is the admin overview, cached for ten minutes.
type DashboardResponse struct {
	TotalUsers      int64             `json:"total_users"`
	TotalCompanies  int64             `json:"total_companies"`
	TotalReviews    int64             `json:"total_reviews"`
	TotalSalaries   int64             `json:"total_salaries"`
	PendingReviews  int64             `json:"pending_reviews"`
	VerifiedReviews int64             `json:"verified_reviews"`
	RejectedReviews int64             `json:"rejected_reviews"`
	RecentReviews   []*ReviewResponse `json:"recent_reviews"`
}

type AdminSalaryFilter struct {
	CompanyID       string `form:"company_id" json:"company_id" validate:"omitempty,uuid"`
	JobTitle        string `form:"job_title" json:"job_title"`
	ExperienceLevel string `form:"experience_level" json:"experience_level" validate:"omitempty,oneof=intern junior middle senior executive"`
	Location        string `form:"location" json:"location"`
}
