package dto

type SearchRequest struct {
	Query string `form:"q" json:"q" validate:"required,min=1,max=200"`
}

// SearchResponse mixes company matches with matching job titles from the
// salary dataset.
type SearchResponse struct {
	Companies []*CompanyResponse `json:"companies"`
	JobTitles []string           `json:"job_titles"`
	Total     int64              `json:"total"`
}
