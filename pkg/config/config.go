package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port     string
	Env      string // development, staging, production
	APIToken string

	// Database
	Database DatabaseConfig

	// Simulation plan
	Plan PlanConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	ConnStr  string // full connection string; overrides the individual vars
}

// PlanConfig holds the DCA plan parameters. The contribution is a fixed
// configuration constant, not user-editable through the API.
type PlanConfig struct {
	MonthlyContribution decimal.Decimal
	Currency            string   // ISO 4217, used for display formatting only
	Tickers             []string // enumerated universe of supported tickers
}

// ConnectionString returns the lib/pq connection string.
func (d DatabaseConfig) ConnectionString() string {
	if d.ConnStr != "" {
		return d.ConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() (*Config, error) {
	// Best effort; absence of a .env file is fine.
	_ = godotenv.Load(".env")

	contribution, err := decimal.NewFromString(getEnv("MONTHLY_CONTRIBUTION", "10000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONTHLY_CONTRIBUTION: %w", err)
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		APIToken: getEnv("API_TOKEN", "dev-token"),

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "investsim"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			ConnStr:  getEnv("DB_CONN_STR", ""),
		},

		Plan: PlanConfig{
			MonthlyContribution: contribution,
			Currency:            getEnv("PLAN_CURRENCY", "INR"),
			Tickers: getEnvAsSlice("TICKERS", []string{
				"TCS", "INFY", "SBIN", "HDFCBANK", "HINDUNILVR", "ICICIBANK",
				"BHARTIARTL", "LT", "ITC", "ASIANPAINT", "WIPRO", "RELIANCE", "AXISBANK",
			}),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if !c.Plan.MonthlyContribution.IsPositive() {
		return fmt.Errorf("MONTHLY_CONTRIBUTION must be positive")
	}

	if len(c.Plan.Tickers) == 0 {
		return fmt.Errorf("TICKERS cannot be empty")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}
	return values
}
