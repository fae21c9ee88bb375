package dto

import (
	"time"

	"iwork_backend/internal/models"
)

type CreateSalaryRequest struct {
	CompanyID       string  `json:"company_id" validate:"required,uuid"`
	JobTitle        string  `json:"job_title" validate:"required,min=1,max=200"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"omitempty,len=3"`
	ExperienceLevel string  `json:"experience_level" validate:"required,oneof=intern junior middle senior executive"`
	EmploymentType  string  `json:"employment_type" validate:"required,oneof=full-time part-time contract internship freelance"`
	Location        string  `json:"location" validate:"max=200"`
	IsAnonymous     bool    `json:"is_anonymous"`
}

type UpdateSalaryRequest struct {
	JobTitle        *string  `json:"job_title,omitempty" validate:"omitempty,min=1,max=200"`
	Amount          *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Currency        *string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	ExperienceLevel *string  `json:"experience_level,omitempty" validate:"omitempty,oneof=intern junior middle senior executive"`
	EmploymentType  *string  `json:"employment_type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	Location        *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	IsAnonymous     *bool    `json:"is_anonymous,omitempty"`
}

type SalaryResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	CompanyName     string    `json:"company_name,omitempty"`
	JobTitle        string    `json:"job_title"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	ExperienceLevel string    `json:"experience_level"`
	EmploymentType  string    `json:"employment_type"`
	Location        string    `json:"location,omitempty"`
	IsAnonymous     bool      `json:"is_anonymous"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewSalaryResponse(salary *models.Salary) *SalaryResponse {
	return &SalaryResponse{
		ID:              salary.ID,
		CompanyID:       salary.CompanyID,
		CompanyName:     salary.Company.Name,
		JobTitle:        salary.JobTitle,
		Amount:          salary.Amount,
		Currency:        salary.Currency,
		ExperienceLevel: salary.ExperienceLevel,
		EmploymentType:  salary.EmploymentType,
		Location:        salary.Location,
		IsAnonymous:     salary.IsAnonymous,
		CreatedAt:       salary.CreatedAt,
	}
}

// StatisticsRequest filters the aggregation sample. Job title and location
// match case-insensitive substrings; an unconstrained request aggregates
// everything.
type StatisticsRequest struct {
	JobTitle        string `form:"job_title" json:"job_title"`
	ExperienceLevel string `form:"experience_level" json:"experience_level" validate:"omitempty,oneof=intern junior middle senior executive"`
	Location        string `form:"location" json:"location"`
}

// StatisticsResponse summarizes a salary sample. Median and quartiles
// appear when the sample is non-empty; the outer deciles need at least
// ten data points.
type StatisticsResponse struct {
	Count   int64    `json:"count"`
	Average *float64 `json:"average,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Median  *float64 `json:"median,omitempty"`
	P25     *float64 `json:"p25,omitempty"`
	P75     *float64 `json:"p75,omitempty"`
	P10     *float64 `json:"p10,omitempty"`
	P90     *float64 `json:"p90,omitempty"`
}

// BreakdownRequest scopes the composite breakdown. All filters optional;
// currency defaults to USD.
type BreakdownRequest struct {
	JobTitle  string `form:"job_title" json:"job_title"`
	CompanyID string `form:"company_id" json:"company_id" validate:"omitempty,uuid"`
	Industry  string `form:"industry" json:"industry"`
	Location  string `form:"location" json:"location"`
	Currency  string `form:"currency" json:"currency" validate:"omitempty,len=3"`
}

// GroupStats is the aggregate for one top-N bucket (location or industry).
type GroupStats struct {
	AvgSalary float64 `json:"avg_salary"`
	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`
	Count     int64   `json:"count"`
}

// BreakdownResponse composes statistics across five partitionings of the
// filtered sample. Partition entries appear only when their count > 0.
type BreakdownResponse struct {
	Overall           *StatisticsResponse            `json:"overall"`
	ByExperienceLevel map[string]*StatisticsResponse `json:"experience_level_breakdown"`
	ByEmploymentType  map[string]*StatisticsResponse `json:"employment_type_breakdown"`
	LocationBreakdown map[string]GroupStats          `json:"location_breakdown"`
	IndustryBreakdown map[string]GroupStats          `json:"industry_breakdown"`
	Currency          string                         `json:"currency"`
}

// CompareRequest asks for a company-vs-industry and/or location-vs-rest
// contrast within one job title.
type CompareRequest struct {
	JobTitle        string `form:"job_title" json:"job_title" validate:"required"`
	CompanyID       string `form:"company_id" json:"company_id" validate:"omitempty,uuid"`
	Location        string `form:"location" json:"location"`
	ExperienceLevel string `form:"experience_level" json:"experience_level" validate:"omitempty,oneof=intern junior middle senior executive"`
	EmploymentType  string `form:"employment_type" json:"employment_type" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	Currency        string `form:"currency" json:"currency" validate:"omitempty,len=3"`
}

// CompanyComparison contrasts one company's pay against the rest of its
// industry for the same title. The industry side excludes the company.
type CompanyComparison struct {
	CompanyName        string  `json:"company_name"`
	CompanyAvgSalary   float64 `json:"company_avg_salary"`
	CompanySampleSize  int64   `json:"company_sample_size"`
	IndustryName       string  `json:"industry_name"`
	IndustryAvgSalary  float64 `json:"industry_avg_salary"`
	IndustrySampleSize int64   `json:"industry_sample_size"`
	PercentDifference  float64 `json:"percent_difference"`
	IsAboveIndustryAvg bool    `json:"is_above_industry_avg"`
}

// LocationComparison contrasts one location against everywhere else.
type LocationComparison struct {
	LocationName       string  `json:"location_name"`
	LocationAvgSalary  float64 `json:"location_avg_salary"`
	LocationSampleSize int64   `json:"location_sample_size"`
	NationalAvgSalary  float64 `json:"national_avg_salary"`
	NationalSampleSize int64   `json:"national_sample_size"`
	PercentDifference  float64 `json:"percent_difference"`
	IsAboveNationalAvg bool    `json:"is_above_national_avg"`
}

// CompareResponse carries whichever comparisons had samples on both sides;
// the others stay null.
type CompareResponse struct {
	JobTitle           string              `json:"job_title"`
	Currency           string              `json:"currency"`
	CompanyComparison  *CompanyComparison  `json:"company_comparison"`
	LocationComparison *LocationComparison `json:"location_comparison"`
}

// DuplicateSalaryEntry is one record inside a suspected duplicate group.
type DuplicateSalaryEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	CompanyID       string    `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	JobTitle        string    `json:"job_title"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	ExperienceLevel string    `json:"experience_level"`
	EmploymentType  string    `json:"employment_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// DuplicateSalariesResponse groups suspected duplicate submissions: same
// user, company and title within the time window.
type DuplicateSalariesResponse struct {
	DuplicateGroups [][]DuplicateSalaryEntry `json:"duplicate_groups"`
	TotalGroups     int                      `json:"total_groups"`
	TimeWindowDays  int                      `json:"time_window_days"`
}
