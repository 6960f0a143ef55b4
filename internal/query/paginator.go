package query

import (
	"context"
	"fmt"

	"github.com/user/content-system/internal/model"
	"gorm.io/gorm"
)

// MaxPageSize caps the page size a caller may request
const MaxPageSize = 100

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// Validate rejects out-of-range values instead of clamping them
func (p Page) Validate() error {
	if p.Number < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidPage, p.Number)
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return fmt.Errorf("%w: page size must be between 1 and %d, got %d", ErrInvalidPage, MaxPageSize, p.Size)
	}
	return nil
}

// Window is one page of results with the totals of the whole filtered set
type Window struct {
	Items      []model.Content
	Page       Page
	TotalItems int64
	TotalPages int
}

// TotalPages is ceil(total/size); no items means no pages
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Offset is the number of rows before the given 1-based page
func Offset(number, size int) int {
	if number < 1 {
		return 0
	}
	return (number - 1) * size
}

// Paginate counts the filtered query and loads the requested page of it.
// filtered must carry only conditions; order is applied to the item query
// alone so the count stays valid on every dialect.
func Paginate(ctx context.Context, filtered *gorm.DB, order func(*gorm.DB) *gorm.DB, p Page) (*Window, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	base := filtered.Session(&gorm.Session{}).WithContext(ctx)

	var total int64
	if err := base.Model(&model.Content{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count contents: %w", err)
	}

	w := &Window{
		Items:      []model.Content{},
		Page:       p,
		TotalItems: total,
		TotalPages: TotalPages(total, p.Size),
	}

	if total == 0 || p.Number > w.TotalPages {
		return w, nil
	}

	items := base.Model(&model.Content{})
	if order != nil {
		items = order(items)
	}
	if err := items.Offset(Offset(p.Number, p.Size)).Limit(p.Size).Find(&w.Items).Error; err != nil {
		return nil, fmt.Errorf("failed to load contents: %w", err)
	}
	return w, nil
}
