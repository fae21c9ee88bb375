package app

import (
	"context"
	"errors"
	"fmt"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/email"
	"iwork_backend/internal/handlers"
	"iwork_backend/internal/integrations"
	"iwork_backend/internal/logger"
	"iwork_backend/internal/middleware"
	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/routes"
	"iwork_backend/internal/scanner"
	"iwork_backend/internal/services"
	"iwork_backend/internal/validator"
	"iwork_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	cfg := config.Load()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := autoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	appCache := connectCache(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokenRepo := repositories.NewRefreshTokenRepository()
	workers.NewTokenCleanupWorker(gormDB, tokenRepo).Start(ctx)

	ginRouter := SetupRouter(cfg, gormDB, appCache)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine with all middleware, services and
// routes attached. Integration tests call it directly against a test database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, appCache cache.Cache) *gin.Engine {
	serviceContainer := initializeServices(cfg, appCache)
	appHandlers := initializeHandlers(serviceContainer)

	router := initializeGinRouter(gormDB)
	routes.SetupRoutes(router, appHandlers, cfg.JWT.Secret)
	return router
}

// connectCache dials Redis. A failed ping degrades the application to
// cache-less operation instead of refusing to start.
func connectCache(cfg *config.Config) cache.Cache {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis address not configured, caching disabled")
		return cache.NewRedisCache(nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	appCache := cache.NewRedisCache(client)
	if err := appCache.Ping(context.Background()); err != nil {
		logger.Warn("Redis unavailable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
		return cache.NewRedisCache(nil)
	}
	logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	return appCache
}

// buildScanner assembles the content screening pipeline from configuration.
// The remote strategy keeps the pattern scanner as a fallback so screening
// survives upstream outages.
func buildScanner(cfg *config.Config) scanner.Scanner {
	if !cfg.Scanner.Enabled {
		logger.Warn("Content scanner disabled, reviews will not be screened")
		return nil
	}

	switch cfg.Scanner.Strategy {
	case "remote":
		if cfg.Scanner.Endpoint == "" {
			logger.Warn("Remote scanner selected but no endpoint configured, using pattern scanner")
			return scanner.NewPatternScanner()
		}
		remote := scanner.NewRemoteScanner(cfg.Scanner.Endpoint, cfg.Scanner.APIKey, cfg.ScannerTimeout())
		return scanner.NewFallbackScanner(remote, scanner.NewPatternScanner())
	default:
		return scanner.NewPatternScanner()
	}
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		return email.NewNoopProvider()
	}
	if cfg.Server.Env == "test" {
		return &MockEmailProvider{}
	}
	return email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
}

func initializeServices(cfg *config.Config, appCache cache.Cache) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	companyRepo := repositories.NewCompanyRepository()
	reviewRepo := repositories.NewReviewRepository()
	salaryRepo := repositories.NewSalaryRepository()
	settingsRepo := repositories.NewSettingsRepository()
	tokenRepo := repositories.NewRefreshTokenRepository()

	contentScanner := buildScanner(cfg)
	emailProvider := buildEmailProvider(cfg)

	stockClient := integrations.NewStockClient(
		cfg.Integrations.StockAPIBaseURL,
		cfg.Integrations.StockAPIKey,
		cfg.IntegrationsTimeout(),
		appCache,
	)
	taxClient := integrations.NewTaxClient(
		cfg.Integrations.FilingsBaseURL,
		cfg.IntegrationsTimeout(),
		appCache,
	)

	return &services.ServiceContainer{
		AuthService:            services.NewAuthService(userRepo, tokenRepo, settingsRepo, cfg),
		UserService:            services.NewUserService(userRepo, tokenRepo),
		CompanyService:         services.NewCompanyService(companyRepo, appCache, stockClient, taxClient, cfg),
		ReviewService:          services.NewReviewService(reviewRepo, companyRepo, settingsRepo, appCache, contentScanner, emailProvider, cfg),
		SalaryService:          services.NewSalaryService(salaryRepo, companyRepo, appCache, cfg),
		SalaryAnalyticsService: services.NewSalaryAnalyticsService(salaryRepo, companyRepo, appCache, cfg),
		SearchService:          services.NewSearchService(companyRepo, salaryRepo, appCache, cfg),
		AdminService:           services.NewAdminService(userRepo, companyRepo, reviewRepo, salaryRepo, appCache, cfg),
		SettingsService:        services.NewSettingsService(settingsRepo),
		EmailProvider:          emailProvider,
		StockClient:            stockClient,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		CompanyHandler:      handlers.NewCompanyHandler(baseHandler, services.CompanyService, services.ReviewService, services.SalaryService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, services.ReviewService),
		SalaryHandler:       handlers.NewSalaryHandler(baseHandler, services.SalaryService, services.SalaryAnalyticsService),
		SearchHandler:       handlers.NewSearchHandler(baseHandler, services.SearchService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, services.AdminService, services.SalaryService),
		SettingsHandler:     handlers.NewSettingsHandler(baseHandler, services.SettingsService),
		IntegrationsHandler: handlers.NewIntegrationsHandler(baseHandler, services.StockClient),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AccountSettings{},
		&models.RefreshToken{},
		&models.Company{},
		&models.Review{},
		&models.AIScannerFlag{},
		&models.FileAttachment{},
		&models.Salary{},
	)
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
