// Package query turns listing parameters into a small filter/sort AST and
// compiles it to gorm clauses, plus offset pagination over the result.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/user/content-system/internal/langcodec"
)

// Predicate is one filter node. Filters in a Query are AND-ed.
type Predicate interface {
	predicate()
}

// YearEquals matches contents released in Year
type YearEquals struct {
	Year int
}

// YearBetween matches contents released in From..To inclusive
type YearBetween struct {
	From, To int
}

// LanguageIn matches contents linked to any of Names (lower-cased)
type LanguageIn struct {
	Names []string
}

func (YearEquals) predicate()  {}
func (YearBetween) predicate() {}
func (LanguageIn) predicate()  {}

var (
	singleYear = regexp.MustCompile(`^(\d{4})$`)
	yearRange  = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
)

// ParseYear accepts "YYYY" or "YYYY-YYYY"
func ParseYear(s string) (Predicate, error) {
	s = strings.TrimSpace(s)

	if m := singleYear.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return YearEquals{Year: y}, nil
	}

	if m := yearRange.FindStringSubmatch(s); m != nil {
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])
		if from > to {
			return nil, fmt.Errorf("%w: range %d-%d is reversed", ErrInvalidYear, from, to)
		}
		return YearBetween{From: from, To: to}, nil
	}

	return nil, fmt.Errorf("%w: %q, expected YYYY or YYYY-YYYY", ErrInvalidYear, s)
}

// ParseLanguages splits a comma-separated list of language names or codes.
// Each token is percent-decoded and expanded with its code, English name
// and native name so "fr", "French" and "Français" find the same rows. Returns nil when nothing is left.
func ParseLanguages(s string) Predicate {
	seen := map[string]struct{}{}
	var names []string
	add := func(v string) {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		names = append(names, v)
	}

	for _, raw := range strings.Split(s, ",") {
		token := raw
		if decoded, err := url.PathUnescape(raw); err == nil {
			token = decoded
		}
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		for _, v := range langcodec.Variants(token) {
			add(v)
		}
	}

	if len(names) == 0 {
		return nil
	}
	return LanguageIn{Names: names}
}

// ParseFilters builds the filter list from the raw year and language values.
// Empty values add no predicate.
func ParseFilters(year, languages string) ([]Predicate, error) {
	var filters []Predicate

	if strings.TrimSpace(year) != "" {
		p, err := ParseYear(year)
		if err != nil {
			return nil, err
		}
		filters = append(filters, p)
	}

	if p := ParseLanguages(languages); p != nil {
		filters = append(filters, p)
	}

	return filters, nil
}
