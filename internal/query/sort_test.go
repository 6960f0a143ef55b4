package query

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		in      string
		want    []SortKey
		wantErr error
	}{
		{in: "", want: nil},
		{in: "title", want: []SortKey{{SortTitle, Asc}}},
		{in: "rating:desc,release_date:asc", want: []SortKey{{SortRating, Desc}, {SortReleaseDate, Asc}}},
		{in: "Vote_Count:DESC", want: []SortKey{{SortVoteCount, Desc}}},
		{in: " title : desc ", want: []SortKey{{SortTitle, Desc}}},
		{in: "budget", wantErr: ErrInvalidSortField},
		{in: "title:sideways", wantErr: ErrInvalidSortDirection},
		{in: "title,rating,release_date", wantErr: ErrTooManySortFields},
		{in: "nope,nope,nope", wantErr: ErrTooManySortFields},
		{in: "title,", wantErr: ErrInvalidSortField},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSort(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortField_Column(t *testing.T) {
	assert.Equal(t, "vote_average", SortRating.Column())
	assert.Equal(t, "release_date", SortReleaseDate.Column())
	assert.Equal(t, "title", SortTitle.Column())
	assert.Equal(t, "vote_count", SortVoteCount.Column())
}

// Property: any sort string with more than two entries is rejected as
// too many fields, whatever the entries contain.
func TestProperty_TooManySortFieldsFirst(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	entry := gen.OneConstOf("title", "rating:desc", "bogus", "title:up", "", "release_date")

	properties.Property("three or more entries is always too many", prop.ForAll(
		func(a, b, c string, rest []string) bool {
			s := a + "," + b + "," + c
			for _, r := range rest {
				s += "," + r
			}
			_, err := ParseSort(s)
			return errors.Is(err, ErrTooManySortFields)
		},
		entry, entry, entry, gen.SliceOf(entry),
	))

	properties.TestingRun(t)
}
