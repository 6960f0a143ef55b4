// Package content serves the paginated content listing.
package content

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/user/content-system/internal/config"
	"github.com/user/content-system/internal/model"
	"github.com/user/content-system/internal/query"
	"github.com/user/content-system/internal/validation"
	"gorm.io/gorm"
)

// Reader is the read side of the store the listing needs
type Reader interface {
	DB() *gorm.DB
	Dialect() string
	LanguagesFor(ctx context.Context, contentIDs []uint) (map[uint][]string, error)
}

// Params are the raw listing parameters
type Params struct {
	Page        int    `query:"page" validate:"gte=1"`
	PageSize    int    `query:"page_size" validate:"gte=1,lte=100"`
	Year        string `query:"year" validate:"omitempty,max=9"`
	Language    string `query:"language" validate:"omitempty,max=500"`
	Sort        string `query:"sort" validate:"omitempty,max=200"`
	IncludeMeta bool   `query:"include_meta"`
}

// Service answers listing requests
type Service struct {
	reader      Reader
	maxPageSize int
}

// NewService creates a new listing service
func NewService(r Reader, cfg config.ListConfig) *Service {
	maxSize := cfg.MaxPageSize
	if maxSize <= 0 || maxSize > query.MaxPageSize {
		maxSize = query.MaxPageSize
	}
	return &Service{reader: r, maxPageSize: maxSize}
}

// List validates p, runs the filtered query and shapes one page of results.
// Every parameter error is returned before the database is queried.
func (s *Service) List(ctx context.Context, p Params) (*ListResponse, error) {
	if err := validation.Struct(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", query.ErrInvalidPage, err)
	}
	if p.PageSize > s.maxPageSize {
		return nil, fmt.Errorf("%w: page_size must be at most %d", query.ErrInvalidPage, s.maxPageSize)
	}

	sortKeys, err := query.ParseSort(p.Sort)
	if err != nil {
		return nil, err
	}
	filters, err := query.ParseFilters(p.Year, p.Language)
	if err != nil {
		return nil, err
	}
	q := query.Compose(filters, sortKeys)

	filtered := q.Where(s.reader.Dialect())(s.reader.DB().WithContext(ctx).Model(&model.Content{}))
	window, err := query.Paginate(ctx, filtered, q.OrderBy(), query.Page{Number: p.Page, Size: p.PageSize})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(window.Items))
	for i, c := range window.Items {
		ids[i] = c.ID
	}
	languages, err := s.reader.LanguagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("page", p.Page).
		Int("page_size", p.PageSize).
		Int64("total_items", window.TotalItems).
		Int("filters", len(filters)).
		Int("sort_keys", len(sortKeys)).
		Msg("Listed contents")

	return newListResponse(window, languages, p.IncludeMeta), nil
}
