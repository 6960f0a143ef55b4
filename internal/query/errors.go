package query

import "errors"

// Client errors raised while parsing listing parameters. None of them
// involves the database.
var (
	ErrTooManySortFields    = errors.New("too many sort fields")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
	ErrInvalidYear          = errors.New("invalid year")
	ErrInvalidPage          = errors.New("invalid page")
)
