package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t, "DB_DRIVER", "DATABASE_URL", "DB_PORT", "SERVER_PORT", "LOG_FORMAT", "UPLOAD_BATCH_SIZE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// DB defaults
	if cfg.DB.Driver != DriverPostgres {
		t.Errorf("DB.Driver = %v, want %v", cfg.DB.Driver, DriverPostgres)
	}
	if cfg.DB.Port != 5432 {
		t.Errorf("DB.Port = %v, want %v", cfg.DB.Port, 5432)
	}
	if cfg.DB.Database != "content_system" {
		t.Errorf("DB.Database = %v, want %v", cfg.DB.Database, "content_system")
	}
	if cfg.DB.Echo {
		t.Errorf("DB.Echo = %v, want false", cfg.DB.Echo)
	}
	if cfg.DB.SlowThreshold != 200*time.Millisecond {
		t.Errorf("DB.SlowThreshold = %v, want %v", cfg.DB.SlowThreshold, 200*time.Millisecond)
	}

	// Server defaults
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %v, want %v", cfg.Server.Port, 8000)
	}
	if cfg.Server.RequestsPerMinute != 100 {
		t.Errorf("Server.RequestsPerMinute = %v, want %v", cfg.Server.RequestsPerMinute, 100)
	}

	// Upload defaults
	if cfg.Upload.BatchSize != 500 {
		t.Errorf("Upload.BatchSize = %v, want %v", cfg.Upload.BatchSize, 500)
	}
	if cfg.Upload.NormalizeLanguages {
		t.Errorf("Upload.NormalizeLanguages = %v, want false", cfg.Upload.NormalizeLanguages)
	}

	// List defaults
	if cfg.List.DefaultPageSize != 20 {
		t.Errorf("List.DefaultPageSize = %v, want %v", cfg.List.DefaultPageSize, 20)
	}
	if cfg.List.MaxPageSize != 100 {
		t.Errorf("List.MaxPageSize = %v, want %v", cfg.List.MaxPageSize, 100)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_NAME", "content.db")
	t.Setenv("DB_ECHO", "true")
	t.Setenv("UPLOAD_NORMALIZE_LANGUAGES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Errorf("DB.Driver = %v, want %v", cfg.DB.Driver, DriverSQLite)
	}
	if !cfg.DB.Echo {
		t.Error("DB.Echo should be true")
	}
	if !cfg.Upload.NormalizeLanguages {
		t.Error("Upload.NormalizeLanguages should be true")
	}
	if got := cfg.DB.DSN(); got != "content.db" {
		t.Errorf("DSN() = %v, want %v", got, "content.db")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid SERVER_PORT, got nil")
	}
}

func validConfig() Config {
	return Config{
		DB:     DBConfig{Driver: DriverPostgres, MaxConns: 10},
		Server: ServerConfig{Port: 8000, RequestsPerMinute: 100},
		Upload: UploadConfig{MaxFileSize: 1024, BatchSize: 100, RateLimit: 1, Burst: 1},
		List:   ListConfig{DefaultPageSize: 20, MaxPageSize: 100},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.DB.Driver = "oracle" }, true},
		{"zero max conns", func(c *Config) { c.DB.MaxConns = 0 }, true},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"zero requests per minute", func(c *Config) { c.Server.RequestsPerMinute = 0 }, true},
		{"zero file size", func(c *Config) { c.Upload.MaxFileSize = 0 }, true},
		{"zero batch size", func(c *Config) { c.Upload.BatchSize = 0 }, true},
		{"zero upload rate", func(c *Config) { c.Upload.RateLimit = 0 }, true},
		{"zero burst", func(c *Config) { c.Upload.Burst = 0 }, true},
		{"max page size above 100", func(c *Config) { c.List.MaxPageSize = 101 }, true},
		{"default above max", func(c *Config) { c.List.DefaultPageSize = 50; c.List.MaxPageSize = 40 }, true},
		{"console format", func(c *Config) { c.Log.Format = "console" }, false},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBConfig
		want string
	}{
		{
			name: "explicit url wins",
			cfg:  DBConfig{Driver: DriverPostgres, URL: "postgres://u:p@db/content", Host: "ignored"},
			want: "postgres://u:p@db/content",
		},
		{
			name: "mysql",
			cfg:  DBConfig{Driver: DriverMySQL, Host: "localhost", Port: 3306, User: "root", Password: "secret", Database: "testdb"},
			want: "root:secret@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name: "postgres",
			cfg:  DBConfig{Driver: DriverPostgres, Host: "localhost", Port: 5432, User: "postgres", Password: "pw", Database: "content_system"},
			want: "host=localhost user=postgres password=pw dbname=content_system port=5432 sslmode=disable TimeZone=UTC",
		},
		{
			name: "sqlite",
			cfg:  DBConfig{Driver: DriverSQLite, Database: "/tmp/content.db"},
			want: "/tmp/content.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DSN(); got != tt.want {
				t.Errorf("DSN() = %v, want %v", got, tt.want)
			}
		})
	}
}
