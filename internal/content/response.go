package content

import (
	"time"

	"github.com/user/content-system/internal/model"
	"github.com/user/content-system/internal/query"
)

// TimestampLayout renders created_at and updated_at in UTC with microseconds
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// ListResponse is the listing payload
type ListResponse struct {
	Data       []ContentItem `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// Pagination describes where the page sits in the filtered set
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// ContentItem is one listed content. The pointer fields are only set when
// metadata is requested.
type ContentItem struct {
	ID                  *uint    `json:"id,omitempty"`
	Budget              float64  `json:"budget"`
	Revenue             float64  `json:"revenue"`
	Runtime             int      `json:"runtime"`
	Status              string   `json:"status"`
	Homepage            string   `json:"homepage"`
	OriginalLanguage    string   `json:"original_language"`
	OriginalTitle       string   `json:"original_title"`
	Title               string   `json:"title"`
	Overview            string   `json:"overview"`
	ReleaseDate         string   `json:"release_date"`
	VoteAverage         float64  `json:"vote_average"`
	VoteCount           int      `json:"vote_count"`
	ProductionCompanyID int64    `json:"production_company_id"`
	GenreID             int64    `json:"genre_id"`
	Languages           []string `json:"languages"`
	IsDeleted           *bool    `json:"is_deleted,omitempty"`
	CreatedAt           *string  `json:"created_at,omitempty"`
	UpdatedAt           *string  `json:"updated_at,omitempty"`
}

func newListResponse(w *query.Window, languages map[uint][]string, includeMeta bool) *ListResponse {
	items := make([]ContentItem, len(w.Items))
	for i := range w.Items {
		items[i] = newContentItem(&w.Items[i], languages[w.Items[i].ID], includeMeta)
	}

	return &ListResponse{
		Data: items,
		Pagination: Pagination{
			CurrentPage: w.Page.Number,
			PageSize:    w.Page.Size,
			TotalItems:  w.TotalItems,
			TotalPages:  w.TotalPages,
		},
	}
}

func newContentItem(c *model.Content, languages []string, includeMeta bool) ContentItem {
	if languages == nil {
		languages = []string{}
	}

	item := ContentItem{
		Budget:              c.Budget,
		Revenue:             c.Revenue,
		Runtime:             c.Runtime,
		Status:              c.Status,
		Homepage:            c.Homepage,
		OriginalLanguage:    c.OriginalLanguage,
		OriginalTitle:       c.OriginalTitle,
		Title:               c.Title,
		Overview:            c.Overview,
		ReleaseDate:         c.ReleaseDate.Format(model.DateLayout),
		VoteAverage:         c.VoteAverage,
		VoteCount:           c.VoteCount,
		ProductionCompanyID: c.ProductionCompanyID,
		GenreID:             c.GenreID,
		Languages:           languages,
	}

	if includeMeta {
		id := c.ID
		deleted := c.IsDeleted
		created := formatTimestamp(c.CreatedAt)
		updated := formatTimestamp(c.UpdatedAt)
		item.ID = &id
		item.IsDeleted = &deleted
		item.CreatedAt = &created
		item.UpdatedAt = &updated
	}
	return item
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
