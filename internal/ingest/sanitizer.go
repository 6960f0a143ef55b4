package ingest

import (
	"strings"

	"github.com/user/content-system/internal/model"
)

// Record is one CSV row keyed by lower-cased column name
type Record map[string]string

// Column groups the sanitizer applies defaults to
var (
	NumericColumns = []string{"budget", "revenue", "runtime", "vote_average", "vote_count"}
	StringColumns  = []string{"status", "homepage", "original_language", "original_title", "title", "overview"}
	DateColumns    = []string{"release_date"}
)

// LanguagesColumn holds the stringified language list
const LanguagesColumn = "languages"

// nullMarkers are cell values treated as missing, matching what spreadsheet
// and dataframe exports write for empty cells.
var nullMarkers = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
	"<NA>": {},
	"-NaN": {},
	"-nan": {},
}

// IsMissing reports whether a raw cell counts as absent.
func IsMissing(v string) bool {
	_, ok := nullMarkers[strings.TrimSpace(v)]
	return ok
}

// fillPolicy maps every sanitized column to its sentinel
var fillPolicy = func() map[string]string {
	p := make(map[string]string)
	for _, c := range NumericColumns {
		p[c] = "0"
	}
	for _, c := range StringColumns {
		p[c] = model.MissingString
	}
	for _, c := range DateColumns {
		p[c] = model.MissingDate
	}
	p[LanguagesColumn] = model.MissingLanguages
	return p
}()

// Sanitize fills missing cells with their column's sentinel. The input batch
// is left untouched; columns without a policy are copied as-is.
func Sanitize(batch []Record) []Record {
	out := make([]Record, len(batch))
	for i, rec := range batch {
		clean := make(Record, len(rec)+len(fillPolicy))
		for k, v := range rec {
			clean[k] = v
		}
		for col, sentinel := range fillPolicy {
			if v, ok := clean[col]; !ok || IsMissing(v) {
				clean[col] = sentinel
			}
		}
		out[i] = clean
	}
	return out
}
