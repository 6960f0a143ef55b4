package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrMalformedInput covers structural problems with an upload: wrong file
	// type, unreadable CSV, missing columns and unparseable cells.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDateParse matches any *DateParseError via errors.Is.
	ErrDateParse = errors.New("invalid release date")
)

// DateParseError reports a release_date cell that is not YYYY-MM-DD
type DateParseError struct {
	Row   int // 1-based data row, header excluded
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: invalid release_date %q, expected YYYY-MM-DD", e.Row, e.Value)
}

func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

// ValidateFileName rejects uploads whose name does not end in .csv
func ValidateFileName(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return malformed("only CSV files are accepted, got %q", name)
	}
	return nil
}
