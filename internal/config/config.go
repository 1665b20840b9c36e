package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"churnboard/internal/errors"
)

// Source kinds accepted by DATA_SOURCE
const (
	SourceFile = "file"
	SourceSQL  = "sql"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Database  DatabaseConfig
	Server    ServerConfig
	Dashboard DashboardConfig
}

// DataConfig selects where the customer table comes from
type DataConfig struct {
	Source     string
	File       string
	ExcelSheet string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL   string
	Table string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	GinMode        string
	MetricsEnabled bool
}

// DashboardConfig holds presentation settings
type DashboardConfig struct {
	PreviewRows  int
	CacheEntries int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:      *loadDataConfig(),
		Database:  *loadDatabaseConfig(),
		Server:    *loadServerConfig(),
		Dashboard: *loadDashboardConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		Source:     strings.ToLower(getEnvOrDefault("DATA_SOURCE", SourceFile)),
		File:       getEnvOrDefault("DATA_FILE", "data/customers.csv"),
		ExcelSheet: getEnvOrDefault("EXCEL_SHEET", "Sheet1"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:   os.Getenv("DATABASE_URL"),
		Table: getEnvOrDefault("CUSTOMERS_TABLE", "customers"),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		GinMode:        getEnvOrDefault("GIN_MODE", "release"),
		MetricsEnabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
	}
}

func loadDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		PreviewRows:  getEnvIntOrDefault("PREVIEW_ROWS", 10),
		CacheEntries: getEnvIntOrDefault("CACHE_ENTRIES", 64),
	}
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceFile:
		if config.Data.File == "" {
			return errors.ConfigInvalid("DATA_FILE is required when DATA_SOURCE=file")
		}
	case SourceSQL:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DATA_SOURCE=sql")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be \"file\" or \"sql\", got " + strconv.Quote(config.Data.Source))
	}
	if !ValidIdentifier(config.Database.Table) {
		return errors.ConfigInvalid("CUSTOMERS_TABLE is not a valid table name: " + strconv.Quote(config.Database.Table))
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Dashboard.PreviewRows < 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must not be negative")
	}
	if config.Dashboard.CacheEntries < 0 {
		return errors.ConfigInvalid("CACHE_ENTRIES must not be negative")
	}
	return nil
}

// ValidIdentifier reports whether name is safe to splice into SQL as a table name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
