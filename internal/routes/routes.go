package routes

import (
	"iwork_backend/internal/handlers"
	"iwork_backend/internal/middleware"
	"iwork_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every endpoint under /api/v1. Groups split by access
// level: public, authenticated, admin.
func SetupRoutes(r *gin.Engine, h *handlers.AppHandlers, jwtSecret string) {
	api := r.Group("/api/v1")

	authRequired := middleware.AuthMiddleware(jwtSecret)
	adminRequired := middleware.RoleMiddleware(models.UserRoleAdmin)

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/refresh", h.AuthHandler.Refresh)
		auth.POST("/logout", h.AuthHandler.Logout)
	}

	// Companies: browsing is public, management is admin-only.
	companies := api.Group("/companies")
	{
		companies.GET("", h.CompanyHandler.List)
		companies.GET("/:id", h.CompanyHandler.GetDetail)
		companies.GET("/:id/reviews", h.CompanyHandler.ListReviews)
		companies.GET("/:id/salaries", h.CompanyHandler.ListSalaries)
		companies.GET("/:id/tax-data", h.CompanyHandler.GetTaxData)

		companies.POST("", authRequired, adminRequired, h.CompanyHandler.Create)
		companies.PUT("/:id", authRequired, adminRequired, h.CompanyHandler.Update)
		companies.DELETE("/:id", authRequired, adminRequired, h.CompanyHandler.Delete)
	}

	// Reviews
	reviews := api.Group("/reviews")
	reviews.Use(authRequired)
	{
		reviews.POST("", h.ReviewHandler.Create)
		reviews.GET("/me", h.ReviewHandler.ListMine)
		reviews.GET("/:id", h.ReviewHandler.GetByID)
		reviews.PUT("/:id", h.ReviewHandler.Update)
		reviews.DELETE("/:id", h.ReviewHandler.Delete)
	}

	// Salaries: aggregates are public, submissions require auth.
	salaries := api.Group("/salaries")
	{
		salaries.GET("/statistics", h.SalaryHandler.Statistics)
		salaries.GET("/breakdown", h.SalaryHandler.Breakdown)
		salaries.GET("/compare", h.SalaryHandler.Compare)

		salaries.POST("", authRequired, h.SalaryHandler.Create)
		salaries.GET("/me", authRequired, h.SalaryHandler.ListMine)
		salaries.PUT("/:id", authRequired, h.SalaryHandler.Update)
		salaries.DELETE("/:id", authRequired, h.SalaryHandler.Delete)
	}

	// Search
	api.GET("/search", h.SearchHandler.Search)

	// Integrations: market quotes, independent of any company record.
	api.GET("/integrations/market-data/:symbol", h.IntegrationsHandler.MarketData)

	// Account settings
	settings := api.Group("/users/me")
	settings.Use(authRequired)
	{
		settings.GET("", h.UserHandler.GetMe)
		settings.PUT("", h.UserHandler.UpdateMe)
		settings.POST("/change-password", h.UserHandler.ChangePassword)
		settings.POST("/deactivate", h.UserHandler.DeactivateMe)
		settings.GET("/settings", h.SettingsHandler.Get)
		settings.PUT("/settings", h.SettingsHandler.Update)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(authRequired, adminRequired)
	{
		admin.GET("/dashboard", h.AdminHandler.Dashboard)
		admin.GET("/reviews/pending", h.ReviewHandler.ListPending)
		admin.PUT("/reviews/:id/moderate", h.ReviewHandler.Moderate)
		admin.POST("/reviews/:id/scan", h.ReviewHandler.Rescan)
		admin.GET("/salaries", h.AdminHandler.ListSalaries)
		admin.GET("/salaries/duplicates", h.AdminHandler.DuplicateSalaries)
		admin.DELETE("/salaries/:id", h.SalaryHandler.Delete)
	}
}
