package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/user/content-system/internal/config"
	"github.com/user/content-system/internal/logging"
	"github.com/user/content-system/internal/store"
)

var rootFlags struct {
	envFile string
	driver  string
	dsn     string
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:          "contentctl",
	Short:        "Ingest and list content from the command line",
	SilenceUsage: true,
	Long: `contentctl talks to the content database directly, using the same
configuration variables as the HTTP service (DB_DRIVER, DATABASE_URL, ...).

Examples:
  contentctl ingest movies.csv
  contentctl list --year 2020-2022 --language english,french --sort rating:desc
  DB_DRIVER=sqlite DB_NAME=content.db contentctl list --page 2`,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	f.StringVar(&rootFlags.driver, "driver", "", "database driver, overrides DB_DRIVER")
	f.StringVar(&rootFlags.dsn, "dsn", "", "data source name, overrides DATABASE_URL")
	f.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "log SQL statements")
}

// loadConfig reads the env file and environment, then applies flag overrides
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(rootFlags.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", rootFlags.envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootFlags.driver != "" {
		cfg.DB.Driver = rootFlags.driver
	}
	if rootFlags.dsn != "" {
		cfg.DB.URL = rootFlags.dsn
	}
	if rootFlags.verbose {
		cfg.DB.Echo = true
		cfg.Log.Level = "debug"
	}
	cfg.Log.Format = "console"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.SetupWriter(cfg.Log, os.Stderr)
	return cfg, nil
}

// openStore loads configuration and connects to the database
func openStore() (*config.Config, *store.GormStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(&cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
