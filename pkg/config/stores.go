// pkg/config/stores.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/snowflakedb/gosnowflake"
)

// SheetsConfig holds Google Sheets store parameters. The credentials file is
// consumed by the injected client constructor; no auth logic lives in this
// module.
type SheetsConfig struct {
	CredentialsFile      string
	ControlSpreadsheetID string // spreadsheet holding the control-list tabs
	MasterSpreadsheetID  string // spreadsheet receiving Cleaned/Excluded

	RequestTimeout time.Duration
}

// PostgresConfig holds PostgreSQL connection parameters
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	StatementTimeout time.Duration
}

// SnowflakeConfig holds Snowflake connection parameters for the
// warehouse-mirrored control lists.
type SnowflakeConfig struct {
	User          string
	Password      string
	Account       string
	Warehouse     string
	Database      string
	Schema        string
	Role          string
	Authenticator gosnowflake.AuthType

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	QueryTimeout time.Duration
}

// LoadSheetsConfig loads Google Sheets configuration from environment variables
func LoadSheetsConfig() (*SheetsConfig, error) {
	controlID := os.Getenv("SHEETS_CONTROL_SPREADSHEET_ID")
	if controlID == "" {
		return nil, errors.New("SHEETS_CONTROL_SPREADSHEET_ID environment variable is required")
	}

	masterID := os.Getenv("SHEETS_MASTER_SPREADSHEET_ID")
	if masterID == "" {
		return nil, errors.New("SHEETS_MASTER_SPREADSHEET_ID environment variable is required")
	}

	cfg := &SheetsConfig{
		CredentialsFile:      getEnv("SHEETS_CREDENTIALS_FILE", "service_account.json"),
		ControlSpreadsheetID: controlID,
		MasterSpreadsheetID:  masterID,
		RequestTimeout:       getEnvAsDuration("SHEETS_REQUEST_TIMEOUT_SECONDS", 60),
	}

	return cfg, nil
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig() (*PostgresConfig, error) {
	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		return nil, errors.New("POSTGRES_USER environment variable is required")
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		return nil, errors.New("POSTGRES_PASSWORD environment variable is required")
	}

	database := os.Getenv("POSTGRES_DB")
	if database == "" {
		return nil, errors.New("POSTGRES_DB environment variable is required")
	}

	cfg := &PostgresConfig{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnvAsInt("POSTGRES_PORT", 5432),
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxOpenConns:     getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 10),
		MaxIdleConns:     getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:  getEnvAsDuration("POSTGRES_CONN_MAX_LIFETIME_SECONDS", 1800),
		ConnMaxIdleTime:  getEnvAsDuration("POSTGRES_CONN_MAX_IDLE_TIME_SECONDS", 600),
		StatementTimeout: getEnvAsDuration("POSTGRES_STATEMENT_TIMEOUT_SECONDS", 300),
	}

	return cfg, nil
}

// LoadSnowflakeConfig loads Snowflake configuration from environment variables
func LoadSnowflakeConfig() (*SnowflakeConfig, error) {
	user := os.Getenv("SNOWFLAKE_USER")
	if user == "" {
		return nil, errors.New("SNOWFLAKE_USER environment variable is required")
	}

	password := os.Getenv("SNOWFLAKE_PASSWORD")
	if password == "" {
		return nil, errors.New("SNOWFLAKE_PASSWORD environment variable is required")
	}

	account := os.Getenv("SNOWFLAKE_ACCOUNT")
	if account == "" {
		return nil, errors.New("SNOWFLAKE_ACCOUNT environment variable is required")
	}

	warehouse := os.Getenv("SNOWFLAKE_WAREHOUSE")
	if warehouse == "" {
		return nil, errors.New("SNOWFLAKE_WAREHOUSE environment variable is required")
	}

	// Convert authenticator string to proper type
	var authenticator gosnowflake.AuthType
	switch getEnv("SNOWFLAKE_AUTHENTICATOR", "snowflake") {
	case "snowflake":
		authenticator = gosnowflake.AuthTypeSnowflake
	case "oauth":
		authenticator = gosnowflake.AuthTypeOAuth
	case "externalbrowser":
		authenticator = gosnowflake.AuthTypeExternalBrowser
	case "username_password_mfa":
		authenticator = gosnowflake.AuthTypeUsernamePasswordMFA
	case "jwt":
		authenticator = gosnowflake.AuthTypeJwt
	case "token":
		authenticator = gosnowflake.AuthTypeTokenAccessor
	case "okta":
		authenticator = gosnowflake.AuthTypeOkta
	default:
		authenticator = gosnowflake.AuthTypeSnowflake
	}

	cfg := &SnowflakeConfig{
		User:          user,
		Password:      password,
		Account:       account,
		Warehouse:     warehouse,
		Database:      getEnv("SNOWFLAKE_DATABASE", "CONTROL_LISTS"),
		Schema:        getEnv("SNOWFLAKE_SCHEMA", "PUBLIC"),
		Role:          getEnv("SNOWFLAKE_ROLE", ""),
		Authenticator: authenticator,

		MaxOpenConns:    getEnvAsInt("SNOWFLAKE_MAX_OPEN_CONNS", 5),
		MaxIdleConns:    getEnvAsInt("SNOWFLAKE_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: getEnvAsDuration("SNOWFLAKE_CONN_MAX_LIFETIME_SECONDS", 600),
		ConnMaxIdleTime: getEnvAsDuration("SNOWFLAKE_CONN_MAX_IDLE_TIME_SECONDS", 300),
		QueryTimeout:    getEnvAsDuration("SNOWFLAKE_QUERY_TIMEOUT_SECONDS", 300),
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}

// ConnectionString returns a formatted Snowflake DSN
func (c *SnowflakeConfig) ConnectionString() string {
	dsn := fmt.Sprintf("%s:%s@%s/%s/%s?warehouse=%s&authenticator=%s",
		c.User,
		c.Password,
		c.Account,
		c.Database,
		c.Schema,
		c.Warehouse,
		c.Authenticator,
	)

	if c.Role != "" {
		dsn += "&role=" + c.Role
	}

	return dsn
}
