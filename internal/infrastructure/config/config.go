package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverOracle   = "oracle"
	DBDriverMemory   = "memory"
)

type Config struct {
	ServerPort           string
	ServerHost           string
	DBDriver             string
	DBDSN                string
	LogLevel             string
	DefaultPageSize      int
	MaxPageSize          int
	StatsRefreshInterval time.Duration
	// APIKey enables the X-API-Key check on /api/v1 when non-empty.
	APIKey               string
	PortfolioDeleteGuard bool
}

func Load() (*Config, error) {
	port := getEnvOrDefault("SERVER_PORT", "8080")
	host := getEnvOrDefault("SERVER_HOST", "localhost")
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	driver := getEnvOrDefault("DB_DRIVER", DBDriverPostgres)
	switch driver {
	case DBDriverPostgres, DBDriverOracle, DBDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q: expected postgres, oracle or memory", driver)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" && driver != DBDriverMemory {
		return nil, fmt.Errorf("DB_DSN environment variable is required for the %s driver", driver)
	}

	defaultPageSize, err := strconv.Atoi(getEnvOrDefault("DEFAULT_PAGE_SIZE", "20"))
	if err != nil || defaultPageSize < 1 {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: must be a positive integer")
	}

	maxPageSize, err := strconv.Atoi(getEnvOrDefault("MAX_PAGE_SIZE", "100"))
	if err != nil || maxPageSize < defaultPageSize {
		return nil, fmt.Errorf("invalid MAX_PAGE_SIZE: must be an integer not below DEFAULT_PAGE_SIZE")
	}

	refreshInterval, err := time.ParseDuration(getEnvOrDefault("STATS_REFRESH_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_REFRESH_INTERVAL: %w", err)
	}
	if refreshInterval <= 0 {
		return nil, fmt.Errorf("invalid STATS_REFRESH_INTERVAL: must be positive")
	}

	deleteGuard, err := strconv.ParseBool(getEnvOrDefault("PORTFOLIO_DELETE_GUARD", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORTFOLIO_DELETE_GUARD: %w", err)
	}

	return &Config{
		ServerPort:           port,
		ServerHost:           host,
		DBDriver:             driver,
		DBDSN:                dsn,
		LogLevel:             logLevel,
		DefaultPageSize:      defaultPageSize,
		MaxPageSize:          maxPageSize,
		StatsRefreshInterval: refreshInterval,
		APIKey:               os.Getenv("API_KEY"),
		PortfolioDeleteGuard: deleteGuard,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
