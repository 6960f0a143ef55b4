package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/user/content-system/internal/config"
	"github.com/user/content-system/internal/model"
	"github.com/user/content-system/internal/store"
)

// TxRunner opens the single transaction an upload is written in
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx store.Tx) error) error
}

// Result summarizes a committed upload
type Result struct {
	UploadID     string
	Rows         int
	Links        int
	NewLanguages int
	Duration     time.Duration
}

// Ingestor turns CSV uploads into content rows and language links
type Ingestor struct {
	store     TxRunner
	batchSize int
	normalize bool
}

// NewIngestor creates a new Ingestor
func NewIngestor(s TxRunner, cfg config.UploadConfig) *Ingestor {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 500
	}
	return &Ingestor{
		store:     s,
		batchSize: batch,
		normalize: cfg.NormalizeLanguages,
	}
}

// Ingest parses, validates and persists one CSV upload. Every row is
// validated before the database is touched, and all writes share one
// transaction: either the whole file lands or nothing does.
func (in *Ingestor) Ingest(ctx context.Context, r io.Reader) (*Result, error) {
	start := time.Now()
	uploadID := uuid.NewString()
	logger := log.With().Str("upload_id", uploadID).Logger()

	records, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}

	rows, err := in.buildRows(Sanitize(records))
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, row := range rows {
		tokens = append(tokens, row.languages...)
	}

	result := &Result{UploadID: uploadID}
	if len(rows) > 0 {
		if err := in.store.InTx(ctx, func(tx store.Tx) error {
			return in.persist(ctx, tx, rows, tokens, result)
		}); err != nil {
			logger.Error().Err(err).Int("rows", len(rows)).Msg("Upload rolled back")
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int("rows", result.Rows).
		Int("links", result.Links).
		Int("new_languages", result.NewLanguages).
		Dur("duration", result.Duration).
		Msg("Upload committed")

	return result, nil
}

func (in *Ingestor) buildRows(records []Record) ([]*pendingRow, error) {
	rows := make([]*pendingRow, 0, len(records))
	for i, rec := range records {
		row, err := buildRow(rec, i+1, in.normalize)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (in *Ingestor) persist(ctx context.Context, tx store.Tx, rows []*pendingRow, tokens []string, result *Result) error {
	created, err := tx.EnsureRegistered(ctx, tokens)
	if err != nil {
		return err
	}

	ids, err := tx.ResolveAll(ctx)
	if err != nil {
		return err
	}

	contents := make([]*model.Content, len(rows))
	for i, row := range rows {
		contents[i] = row.content
	}
	if err := tx.InsertContents(ctx, contents, in.batchSize); err != nil {
		return err
	}

	var links []model.ContentLanguage
	for _, row := range rows {
		for _, name := range row.languages {
			langID, ok := ids[name]
			if !ok {
				return fmt.Errorf("language %q missing from registry after registration", name)
			}
			links = append(links, model.ContentLanguage{ContentID: row.content.ID, LanguageID: langID})
		}
	}
	if err := tx.InsertContentLanguages(ctx, links, in.batchSize); err != nil {
		return err
	}

	result.Rows = len(contents)
	result.Links = len(links)
	result.NewLanguages = created
	return nil
}
