package services

import (
	"iwork_backend/internal/email"
	"iwork_backend/internal/integrations"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService            AuthService
	UserService            UserService
	CompanyService         CompanyService
	ReviewService          ReviewService
	SalaryService          SalaryService
	SalaryAnalyticsService SalaryAnalyticsService
	SearchService          SearchService
	AdminService           AdminService
	SettingsService        SettingsService
	EmailProvider          email.Provider
	StockClient            *integrations.StockClient
}
