package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    Predicate
		wantErr bool
	}{
		{"2021", YearEquals{Year: 2021}, false},
		{" 1999 ", YearEquals{Year: 1999}, false},
		{"2020-2022", YearBetween{From: 2020, To: 2022}, false},
		{"2021-2021", YearBetween{From: 2021, To: 2021}, false},
		{"2022-2020", nil, true},
		{"21", nil, true},
		{"20211", nil, true},
		{"2021-", nil, true},
		{"abcd", nil, true},
		{"2021 - 2022", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYear(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidYear)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		isNil    bool
	}{
		{name: "empty", in: "", isNil: true},
		{name: "only commas", in: " , ,", isNil: true},
		{name: "names are lower-cased", in: "English,French", contains: []string{"english", "french"}},
		{name: "name expands to code", in: "English", contains: []string{"english", "en"}},
		{name: "code expands to name", in: "fr", contains: []string{"fr", "french"}},
		{name: "percent-encoded", in: "Fran%C3%A7ais", contains: []string{"français", "fr"}},
		{name: "plus stays literal", in: "a+b", contains: []string{"a+b"}},
		{name: "bad escape kept raw", in: "50%zz", contains: []string{"50%zz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLanguages(tt.in)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.IsType(t, LanguageIn{}, got)
			names := got.(LanguageIn).Names
			for _, want := range tt.contains {
				assert.Contains(t, names, want)
			}
			assert.Equal(t, len(names), len(unique(names)), "names are de-duplicated")
		})
	}
}

func unique(in []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}

func TestParseFilters(t *testing.T) {
	filters, err := ParseFilters("", "")
	require.NoError(t, err)
	assert.Empty(t, filters)

	filters, err = ParseFilters("2020-2022", "en")
	require.NoError(t, err)
	require.Len(t, filters, 2)
	assert.Equal(t, YearBetween{From: 2020, To: 2022}, filters[0])

	_, err = ParseFilters("last year", "en")
	assert.ErrorIs(t, err, ErrInvalidYear)
}
