package dto

import (
	"time"

	"iwork_backend/internal/models"
)

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Industry    string `json:"industry" validate:"max=100"`
	Location    string `json:"location" validate:"max=200"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Website     string `json:"website" validate:"omitempty,url"`
	FoundedYear int    `json:"founded_year" validate:"omitempty,min=1800,max=2100"`
	IsPublic    bool   `json:"is_public"`
	StockSymbol string `json:"stock_symbol" validate:"max=10"`
	SecCIK      string `json:"sec_cik" validate:"max=20"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	FoundedYear *int    `json:"founded_year,omitempty" validate:"omitempty,min=1800,max=2100"`
	IsPublic    *bool   `json:"is_public,omitempty"`
	StockSymbol *string `json:"stock_symbol,omitempty" validate:"omitempty,max=10"`
	SecCIK      *string `json:"sec_cik,omitempty" validate:"omitempty,max=20"`
}

type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Location    string    `json:"location,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Website     string    `json:"website,omitempty"`
	FoundedYear int       `json:"founded_year,omitempty"`
	IsPublic    bool      `json:"is_public"`
	StockSymbol string    `json:"stock_symbol,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCompanyResponse(company *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Industry:    company.Industry,
		Location:    company.Location,
		LogoURL:     company.LogoURL,
		Website:     company.Website,
		FoundedYear: company.FoundedYear,
		IsPublic:    company.IsPublic,
		StockSymbol: company.StockSymbol,
		CreatedAt:   company.CreatedAt,
	}
}

// CompanyDetailResponse extends the base shape with the verified-review
// aggregate and optional market data.
type CompanyDetailResponse struct {
	CompanyResponse
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int64       `json:"review_count"`
	StockData     *StockQuote `json:"stock_data,omitempty"`
}
