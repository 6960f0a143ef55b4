package store

import (
	"context"

	"github.com/user/content-system/internal/model"
	"gorm.io/gorm"
)

// Tx is the set of write operations an ingestion performs inside one
// transaction. GormStore satisfies it both directly and within InTx.
type Tx interface {
	// Language registry
	EnsureRegistered(ctx context.Context, tokens []string) (inserted int, err error)
	ResolveAll(ctx context.Context) (map[string]uint, error)

	// Content rows and their language links
	InsertContents(ctx context.Context, rows []*model.Content, batchSize int) error
	InsertContentLanguages(ctx context.Context, links []model.ContentLanguage, batchSize int) error
}

// Store defines the interface for data persistence operations
type Store interface {
	Tx

	// InTx runs fn inside a single transaction; any error rolls everything back.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// LanguagesFor returns the linked language names per content id.
	LanguagesFor(ctx context.Context, contentIDs []uint) (map[uint][]string, error)

	// DB and Dialect expose the query builder for read paths.
	DB() *gorm.DB
	Dialect() string

	// Health check
	Ping(ctx context.Context) error
	Close() error
}
