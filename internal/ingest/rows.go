package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/user/content-system/internal/langcodec"
	"github.com/user/content-system/internal/model"
)

// pendingRow is a validated record waiting for the transaction
type pendingRow struct {
	content   *model.Content
	languages []string
}

// buildRow converts one sanitized record. row is the 1-based data row used
// in error messages.
func buildRow(rec Record, row int, normalize bool) (*pendingRow, error) {
	var (
		c   = &model.Content{}
		err error
	)

	if c.Budget, err = parseFloat(rec, "budget", row); err != nil {
		return nil, err
	}
	if c.Revenue, err = parseFloat(rec, "revenue", row); err != nil {
		return nil, err
	}
	if c.VoteAverage, err = parseFloat(rec, "vote_average", row); err != nil {
		return nil, err
	}
	if c.Runtime, err = parseInt(rec, "runtime", row); err != nil {
		return nil, err
	}
	if c.VoteCount, err = parseInt(rec, "vote_count", row); err != nil {
		return nil, err
	}
	if c.ProductionCompanyID, err = parseForeignKey(rec, "production_company_id", row); err != nil {
		return nil, err
	}
	if c.GenreID, err = parseForeignKey(rec, "genre_id", row); err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(rec["release_date"])
	c.ReleaseDate, err = time.Parse(model.DateLayout, raw)
	if err != nil {
		return nil, &DateParseError{Row: row, Value: raw, Err: err}
	}

	c.Status = rec["status"]
	c.Homepage = rec["homepage"]
	c.OriginalLanguage = rec["original_language"]
	c.OriginalTitle = rec["original_title"]
	c.Title = rec["title"]
	c.Overview = rec["overview"]

	var tokens []string
	if normalize {
		tokens = langcodec.ParseAndNormalize(rec[LanguagesColumn])
	} else {
		tokens = langcodec.Parse(rec[LanguagesColumn])
	}

	tokens = langcodec.Unique(tokens)
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) > model.MaxLanguageNameLen {
			return nil, malformed("row %d: language %q is longer than %d characters", row, tok, model.MaxLanguageNameLen)
		}
	}

	return &pendingRow{content: c, languages: tokens}, nil
}

func parseFloat(rec Record, col string, row int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, malformed("row %d: %s is not a number: %q", row, col, rec[col])
	}
	return v, nil
}

// parseInt accepts "12" and the float rendering "12.0" some exporters write
func parseInt(rec Record, col string, row int) (int, error) {
	n, err := parseWhole(rec[col])
	if err != nil {
		return 0, malformed("row %d: %s is not an integer: %q", row, col, rec[col])
	}
	return int(n), nil
}

func parseForeignKey(rec Record, col string, row int) (int64, error) {
	raw := rec[col]
	if IsMissing(raw) {
		return 0, malformed("row %d: %s is required", row, col)
	}
	n, err := parseWhole(raw)
	if err != nil {
		return 0, malformed("row %d: %s is not an integer: %q", row, col, raw)
	}
	return n, nil
}

func parseWhole(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, strconv.ErrRange
	}
	return int64(f), nil
}
