// Package storetest opens throwaway stores for tests in other packages.
package storetest

import (
	"os"
	"strconv"
	"testing"

	"github.com/user/content-system/internal/config"
	"github.com/user/content-system/internal/store"
)

// New returns a migrated store backed by an in-memory sqlite database.
// Setting TEST_DB_DRIVER to mysql or postgres (with the usual DB_* variables)
// runs the same tests against a real server; unreachable servers skip the test.
func New(t testing.TB) *store.GormStore {
	t.Helper()

	cfg := &config.DBConfig{
		Driver:      config.DriverSQLite,
		Database:    ":memory:",
		MaxConns:    1,
		AutoMigrate: true,
	}

	if driver := os.Getenv("TEST_DB_DRIVER"); driver != "" && driver != config.DriverSQLite {
		cfg = externalConfig(driver)
	}

	s, err := store.Open(cfg)
	if err != nil {
		if cfg.Driver != config.DriverSQLite {
			t.Skipf("Skipping test: cannot connect to %s: %v", cfg.Driver, err)
		}
		t.Fatalf("failed to open test store: %v", err)
	}

	t.Cleanup(func() {
		if cfg.Driver != config.DriverSQLite {
			db := s.DB()
			db.Exec("DELETE FROM content_languages")
			db.Exec("DELETE FROM contents")
			db.Exec("DELETE FROM languages")
		}
		s.Close()
	})
	return s
}

func externalConfig(driver string) *config.DBConfig {
	port, _ := strconv.Atoi(os.Getenv("TEST_DB_PORT"))
	if port == 0 {
		port = 5432
		if driver == config.DriverMySQL {
			port = 3306
		}
	}
	return &config.DBConfig{
		Driver:      driver,
		URL:         os.Getenv("TEST_DATABASE_URL"),
		Host:        envOr("TEST_DB_HOST", "localhost"),
		Port:        port,
		User:        envOr("TEST_DB_USER", "root"),
		Password:    os.Getenv("TEST_DB_PASSWORD"),
		Database:    envOr("TEST_DB_NAME", "content_system_test"),
		MaxConns:    5,
		AutoMigrate: true,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
