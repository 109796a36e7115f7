package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Provider ProviderConfig
	Refresh  RefreshConfig
	Analysis AnalysisConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ProviderConfig holds the endpoints of the external fund data provider.
type ProviderConfig struct {
	HistoryBaseURL  string
	EstimateBaseURL string
}

// RefreshConfig controls the scheduled market data refresh.
type RefreshConfig struct {
	CronSpec string
	Enabled  bool
}

// AnalysisConfig holds tunables of the derived analytics.
type AnalysisConfig struct {
	PivotDeviationPct float64 // minimum retracement for a trend pivot
	HistoryDays       int     // NAV history window fetched per fund
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fundlens.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Provider: ProviderConfig{
			HistoryBaseURL:  getEnv("PROVIDER_HISTORY_URL", "https://api.fund.eastmoney.com/f10/lsjz"),
			EstimateBaseURL: getEnv("PROVIDER_ESTIMATE_URL", "https://fundgz.1234567.com.cn/js"),
		},
		Refresh: RefreshConfig{
			// Weekday market hours, every 30 minutes.
			CronSpec: getEnv("REFRESH_CRON", "*/30 9-15 * * 1-5"),
			Enabled:  getEnvBool("REFRESH_ENABLED", true),
		},
		Analysis: AnalysisConfig{
			PivotDeviationPct: getEnvFloat("PIVOT_DEVIATION_PCT", 3.0),
			HistoryDays:       getEnvInt("NAV_HISTORY_DAYS", 365),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
