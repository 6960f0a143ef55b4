package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/content-system/internal/content"
)

const sampleCSV = `budget,homepage,original_language,original_title,overview,release_date,revenue,runtime,status,title,vote_average,vote_count,production_company_id,genre_id,languages
1000,,en,Alien,,1979-05-25,5000,117,Released,Alien,8.1,9000,1,2,"['English']"
2000,,fr,Amélie,,2001-04-25,6000,122,Released,Amelie,7.8,8000,3,4,"['Français', 'English']"
`

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestIngestThenList(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "movies.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o600))

	t.Setenv("DB_AUTO_MIGRATE", "true")
	common := []string{"--env-file", filepath.Join(dir, "missing.env"), "--driver", "sqlite", "--dsn", filepath.Join(dir, "content.db")}

	var ingested map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(run(t, append([]string{"ingest", csvPath}, common...)...)), &ingested))
	assert.EqualValues(t, 2, ingested["rows"])
	assert.EqualValues(t, 3, ingested["links"])
	assert.EqualValues(t, 2, ingested["new_languages"])

	var listed content.ListResponse
	require.NoError(t, json.Unmarshal([]byte(run(t, append([]string{"list", "--language", "french"}, common...)...)), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, "Amelie", listed.Data[0].Title)
	assert.Equal(t, []string{"English", "Français"}, listed.Data[0].Languages)
	assert.EqualValues(t, 1, listed.Pagination.TotalItems)
}

func TestIngest_RejectsNonCSV(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"ingest", "movies.txt"})
	assert.Error(t, rootCmd.Execute())
}
