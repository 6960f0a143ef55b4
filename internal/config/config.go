package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
// It is built once at startup and passed by pointer; nothing mutates it afterwards.
type Config struct {
	DB     DBConfig
	Server ServerConfig
	Upload UploadConfig
	List   ListConfig
	Log    LogConfig
}

// DBConfig holds database configuration
type DBConfig struct {
	Driver        string        `envconfig:"DB_DRIVER" default:"postgres"`
	URL           string        `envconfig:"DATABASE_URL"`
	Host          string        `envconfig:"DB_HOST" default:"localhost"`
	Port          int           `envconfig:"DB_PORT" default:"5432"`
	User          string        `envconfig:"DB_USER" default:"postgres"`
	Password      string        `envconfig:"DB_PASSWORD"`
	Database      string        `envconfig:"DB_NAME" default:"content_system"`
	MaxConns      int           `envconfig:"DB_MAX_CONNS" default:"10"`
	Echo          bool          `envconfig:"DB_ECHO" default:"false"`
	SlowThreshold time.Duration `envconfig:"DB_SLOW_THRESHOLD" default:"200ms"`
	AutoMigrate   bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port              int           `envconfig:"SERVER_PORT" default:"8000"`
	ReadTimeout       time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout       time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	RequestsPerMinute int           `envconfig:"SERVER_REQUESTS_PER_MINUTE" default:"100"`
}

// UploadConfig holds CSV ingestion configuration
type UploadConfig struct {
	MaxFileSize        int64   `envconfig:"UPLOAD_MAX_FILE_SIZE" default:"33554432"`
	BatchSize          int     `envconfig:"UPLOAD_BATCH_SIZE" default:"500"`
	RateLimit          float64 `envconfig:"UPLOAD_RATE_LIMIT" default:"1"`
	Burst              int     `envconfig:"UPLOAD_BURST" default:"3"`
	NormalizeLanguages bool    `envconfig:"UPLOAD_NORMALIZE_LANGUAGES" default:"false"`
}

// ListConfig holds listing defaults
type ListConfig struct {
	DefaultPageSize int `envconfig:"LIST_DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int `envconfig:"LIST_MAX_PAGE_SIZE" default:"100"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// DSN returns the data source name for the configured driver.
// DATABASE_URL wins when set; otherwise it is assembled from the discrete fields.
func (c *DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Database)
	case DriverSQLite:
		return c.Database
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			c.Host, c.User, c.Password, c.Database, c.Port)
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to load db config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Upload); err != nil {
		return nil, fmt.Errorf("failed to load upload config: %w", err)
	}

	if err := envconfig.Process("", &cfg.List); err != nil {
		return nil, fmt.Errorf("failed to load list config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}

	cfg.DB.Driver = strings.ToLower(cfg.DB.Driver)
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be one of mysql, postgres, sqlite; got %q", c.DB.Driver)
	}
	if c.DB.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.Server.RequestsPerMinute <= 0 {
		return fmt.Errorf("SERVER_REQUESTS_PER_MINUTE must be positive")
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if c.Upload.BatchSize <= 0 {
		return fmt.Errorf("UPLOAD_BATCH_SIZE must be positive")
	}
	if c.Upload.RateLimit <= 0 {
		return fmt.Errorf("UPLOAD_RATE_LIMIT must be positive")
	}
	if c.Upload.Burst <= 0 {
		return fmt.Errorf("UPLOAD_BURST must be positive")
	}
	if c.List.MaxPageSize < 1 || c.List.MaxPageSize > 100 {
		return fmt.Errorf("LIST_MAX_PAGE_SIZE must be between 1 and 100")
	}
	if c.List.DefaultPageSize < 1 || c.List.DefaultPageSize > c.List.MaxPageSize {
		return fmt.Errorf("LIST_DEFAULT_PAGE_SIZE must be between 1 and LIST_MAX_PAGE_SIZE")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}
