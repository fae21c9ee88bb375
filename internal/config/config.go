package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is the explicit application configuration. It is loaded once in
// app.Run and passed to component constructors; there is no process-global
// settings object.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // access token lifetime, minutes
		RefreshTTL int    `yaml:"refresh_ttl"` // refresh token lifetime, hours
	} `yaml:"jwt"`

	Scanner struct {
		Enabled  bool   `yaml:"enabled"`
		Strategy string `yaml:"strategy"` // pattern, remote
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
		TimeoutS int    `yaml:"timeout_seconds"`
	} `yaml:"scanner"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Integrations struct {
		StockAPIBaseURL string `yaml:"stock_api_base_url"`
		StockAPIKey     string `yaml:"stock_api_key"`
		FilingsBaseURL  string `yaml:"filings_base_url"`
		TimeoutS        int    `yaml:"timeout_seconds"`
	} `yaml:"integrations"`

	CacheTTL struct {
		CompanyDetailM  int `yaml:"company_detail_minutes"`
		CompanyReviewsM int `yaml:"company_reviews_minutes"`
		CompanySalaryM  int `yaml:"company_salaries_minutes"`
		StatisticsM     int `yaml:"statistics_minutes"`
		DashboardM      int `yaml:"dashboard_minutes"`
		AdminSalariesM  int `yaml:"admin_salaries_minutes"`
		SearchM         int `yaml:"search_minutes"`
	} `yaml:"cache_ttl"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// Load reads configuration from config.yaml, or from environment variables
// when DATABASE_URL is set (test and container deployments).
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = envOr("SERVER_ENV", "development")
		cfg.Server.Port = envInt("SERVER_PORT", 4000)
		cfg.JWT.Secret = envOr("JWT_SECRET", "")
		cfg.JWT.TTL = envInt("JWT_TTL_MINUTES", 60)
		cfg.JWT.RefreshTTL = envInt("JWT_REFRESH_TTL_HOURS", 24*7)
		cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
		cfg.Scanner.Enabled = envBool("AI_SCANNER_ENABLED", true)
		cfg.Scanner.Strategy = envOr("AI_SCANNER_STRATEGY", "pattern")
		cfg.Scanner.Endpoint = os.Getenv("AI_SCANNER_ENDPOINT")
		cfg.Scanner.APIKey = os.Getenv("AI_SCANNER_API_KEY")
		cfg.Email.Enabled = envBool("EMAILS_ENABLED", false)
		cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
		cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")
		applyDefaults(&cfg)
		return &cfg
	}

	configPath := envOr("CONFIG_PATH", "config/config.yaml")
	f, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("Failed to open config file at %s: %v", configPath, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
	}

	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 24 * 7
	}
	if cfg.Scanner.Strategy == "" {
		cfg.Scanner.Strategy = "pattern"
	}
	if cfg.Scanner.TimeoutS == 0 {
		cfg.Scanner.TimeoutS = 10
	}
	if cfg.Integrations.TimeoutS == 0 {
		cfg.Integrations.TimeoutS = 10
	}
	if cfg.CacheTTL.CompanyDetailM == 0 {
		cfg.CacheTTL.CompanyDetailM = 30
	}
	if cfg.CacheTTL.CompanyReviewsM == 0 {
		cfg.CacheTTL.CompanyReviewsM = 60
	}
	if cfg.CacheTTL.CompanySalaryM == 0 {
		cfg.CacheTTL.CompanySalaryM = 60
	}
	if cfg.CacheTTL.StatisticsM == 0 {
		cfg.CacheTTL.StatisticsM = 180
	}
	if cfg.CacheTTL.DashboardM == 0 {
		cfg.CacheTTL.DashboardM = 10
	}
	if cfg.CacheTTL.AdminSalariesM == 0 {
		cfg.CacheTTL.AdminSalariesM = 5
	}
	if cfg.CacheTTL.SearchM == 0 {
		cfg.CacheTTL.SearchM = 15
	}
}

// ScannerTimeout returns the outbound scanner call budget.
func (c *Config) ScannerTimeout() time.Duration {
	return time.Duration(c.Scanner.TimeoutS) * time.Second
}

// IntegrationsTimeout returns the outbound financial API call budget.
func (c *Config) IntegrationsTimeout() time.Duration {
	return time.Duration(c.Integrations.TimeoutS) * time.Second
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "true" || v == "1"
}
