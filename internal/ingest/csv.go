package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// RequiredColumns must be present in the header; the sanitizer has no
// default for the foreign keys and titles are mandatory.
var RequiredColumns = []string{"original_title", "title", "release_date", "production_company_id", "genre_id"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads the whole upload into records keyed by header name.
// Header names are trimmed and lower-cased; a UTF-8 BOM is ignored.
func ReadCSV(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == string(utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed("file is empty")
	}
	if err != nil {
		return nil, malformed("cannot read header: %v", err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := seen[name]; dup && name != "" {
			return nil, malformed("duplicate column %q", name)
		}
		seen[name] = struct{}{}
		columns[i] = name
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := seen[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, malformed("missing required columns: %s", strings.Join(missing, ", "))
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed("row %d: %v", len(records)+1, err)
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			rec[col] = fields[i]
		}
		records = append(records, rec)
	}

	return records, nil
}
