package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/content-system/internal/ingest"
)

var ingestFlags struct {
	batch     int
	normalize bool
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.csv>",
	Short: "Ingest a CSV export in one transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.IntVar(&ingestFlags.batch, "batch", 0, "insert batch size (default UPLOAD_BATCH_SIZE)")
	f.BoolVar(&ingestFlags.normalize, "normalize", false, "store ISO 639-1 codes instead of language names")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := ingest.ValidateFileName(path); err != nil {
		return err
	}

	cfg, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if ingestFlags.batch > 0 {
		cfg.Upload.BatchSize = ingestFlags.batch
	}
	if cmd.Flags().Changed("normalize") {
		cfg.Upload.NormalizeLanguages = ingestFlags.normalize
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := ingest.NewIngestor(db, cfg.Upload).Ingest(cmd.Context(), f)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), map[string]interface{}{
		"upload_id":     res.UploadID,
		"rows":          res.Rows,
		"links":         res.Links,
		"new_languages": res.NewLanguages,
		"duration":      res.Duration.String(),
	})
}
