package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/user/content-system/internal/config"
	"github.com/user/content-system/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GormStore implements Store on top of gorm for mysql, postgres and sqlite
type GormStore struct {
	db      *gorm.DB
	dialect string
}

// Open connects to the configured database, sizes the pool and migrates the schema
func Open(cfg *config.DBConfig) (*GormStore, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger:         NewGormLogger(cfg.Echo, cfg.SlowThreshold),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	if cfg.Driver == config.DriverSQLite {
		// one connection keeps ":memory:" databases alive and avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetMaxIdleConns(max(cfg.MaxConns/2, 1))
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(model.All()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		if cfg.Driver == config.DriverMySQL {
			if err := binaryLanguageNames(db); err != nil {
				return nil, err
			}
		}
	}

	return New(db, cfg.Driver), nil
}

// binaryLanguageNames switches languages.name to a binary collation so
// names differing only by case are distinct keys, as on postgres and sqlite.
func binaryLanguageNames(db *gorm.DB) error {
	stmt := fmt.Sprintf("ALTER TABLE languages MODIFY name VARCHAR(%d) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		model.MaxLanguageNameLen)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to set languages.name collation: %w", err)
	}
	return nil
}

// New wraps an existing gorm handle. dialect is one of the config.Driver* names.
func New(db *gorm.DB, dialect string) *GormStore {
	return &GormStore{db: db, dialect: dialect}
}

func dialectorFor(cfg *config.DBConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// InTx runs fn in a transaction. mysql and postgres use repeatable read so
// two uploads racing on the same new language cannot both insert it.
func (s *GormStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	run := func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, dialect: s.dialect})
	}

	db := s.db.WithContext(ctx)
	if s.dialect == config.DriverSQLite {
		return classify(db.Transaction(run))
	}
	return classify(db.Transaction(run, &sql.TxOptions{Isolation: sql.LevelRepeatableRead}))
}

// InsertContents inserts content rows in batches; ids are written back into rows
func (s *GormStore) InsertContents(ctx context.Context, rows []*model.Content, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert contents: %w", classify(err))
	}
	return nil
}

// InsertContentLanguages inserts junction rows in batches
func (s *GormStore) InsertContentLanguages(ctx context.Context, links []model.ContentLanguage, batchSize int) error {
	if len(links) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(links, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert content languages: %w", classify(err))
	}
	return nil
}

// LanguagesFor returns language names per content id, names sorted
func (s *GormStore) LanguagesFor(ctx context.Context, contentIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ContentID uint
		Name      string
	}
	err := s.db.WithContext(ctx).
		Table("content_languages").
		Select("content_languages.content_id, languages.name").
		Joins("JOIN languages ON languages.id = content_languages.language_id").
		Where("content_languages.content_id IN ?", contentIDs).
		Order("content_languages.content_id, languages.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load content languages: %w", err)
	}

	for _, r := range rows {
		result[r.ContentID] = append(result[r.ContentID], r.Name)
	}
	return result, nil
}

// Dialect returns the driver name the store was opened with
func (s *GormStore) Dialect() string {
	return s.dialect
}

// Ping checks database connectivity
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm.DB instance
func (s *GormStore) DB() *gorm.DB {
	return s.db
}
