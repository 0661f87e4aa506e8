// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Backend names accepted for the control-list source and result sink.
const (
	BackendSheets    = "sheets"
	BackendPostgres  = "postgres"
	BackendSnowflake = "snowflake"
)

// Config represents the application configuration
type Config struct {
	// External store selection
	ControlBackend string // where control lists are read from
	SinkBackend    string // where Cleaned/Excluded tables are written

	Sheets    *SheetsConfig
	Postgres  *PostgresConfig
	Snowflake *SnowflakeConfig

	// Reconciliation settings
	CountryCode string
	ControlTabs []ControlTab

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ControlBackend: getEnv("CONTROL_BACKEND", BackendSheets),
		SinkBackend:    getEnv("SINK_BACKEND", BackendSheets),
		CountryCode:    getEnv("COUNTRY_CODE", "60"),
		ControlTabs:    LoadControlTabs(),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	if cfg.ControlBackend == BackendSheets || cfg.SinkBackend == BackendSheets {
		sheetsCfg, err := LoadSheetsConfig()
		if err != nil {
			return nil, errors.New("failed to load Sheets configuration: " + err.Error())
		}
		cfg.Sheets = sheetsCfg
	}

	if cfg.ControlBackend == BackendPostgres || cfg.SinkBackend == BackendPostgres {
		pgConfig, err := LoadPostgresConfig()
		if err != nil {
			return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
		}
		cfg.Postgres = pgConfig
	}

	if cfg.ControlBackend == BackendSnowflake {
		snowConfig, err := LoadSnowflakeConfig()
		if err != nil {
			return nil, errors.New("failed to load Snowflake configuration: " + err.Error())
		}
		cfg.Snowflake = snowConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	switch c.ControlBackend {
	case BackendSheets, BackendPostgres, BackendSnowflake:
	default:
		return errors.New("unknown control backend: " + c.ControlBackend)
	}

	switch c.SinkBackend {
	case BackendSheets, BackendPostgres:
	case BackendSnowflake:
		return errors.New("snowflake backend is read-only and cannot be the result sink")
	default:
		return errors.New("unknown sink backend: " + c.SinkBackend)
	}

	if c.CountryCode == "" {
		return errors.New("country code cannot be empty")
	}

	if len(c.ControlTabs) == 0 {
		return errors.New("at least one control tab is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
