package query

import (
	"fmt"
	"strings"
)

// MaxSortKeys is the largest number of sort fields a listing accepts
const MaxSortKeys = 2

// SortField is a client-facing sort name
type SortField string

const (
	SortReleaseDate SortField = "release_date"
	SortRating      SortField = "rating"
	SortTitle       SortField = "title"
	SortVoteCount   SortField = "vote_count"
)

var sortColumns = map[SortField]string{
	SortReleaseDate: "release_date",
	SortRating:      "vote_average",
	SortTitle:       "title",
	SortVoteCount:   "vote_count",
}

// Column returns the contents column the field sorts on
func (f SortField) Column() string {
	return sortColumns[f]
}

// Direction is asc or desc
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKey is one ORDER BY term
type SortKey struct {
	Field     SortField
	Direction Direction
}

// ParseSort parses "field[:direction][,field[:direction]]". More than
// MaxSortKeys entries is rejected before any field is looked at.
func ParseSort(s string) ([]SortKey, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > MaxSortKeys {
		return nil, fmt.Errorf("%w: got %d, at most %d allowed", ErrTooManySortFields, len(parts), MaxSortKeys)
	}

	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		name, dir, _ := strings.Cut(strings.TrimSpace(part), ":")

		field := SortField(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := sortColumns[field]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, name)
		}

		direction := Asc
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			direction = Desc
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortDirection, dir)
		}

		keys = append(keys, SortKey{Field: field, Direction: direction})
	}
	return keys, nil
}
