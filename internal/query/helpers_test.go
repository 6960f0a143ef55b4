package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/content-system/internal/model"
	"github.com/user/content-system/internal/store"
	"github.com/user/content-system/internal/store/storetest"
)

type seedItem struct {
	title     string
	date      string
	rating    float64
	votes     int
	deleted   bool
	languages []string
}

func seed(t *testing.T, items ...seedItem) *store.GormStore {
	t.Helper()
	s := storetest.New(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(tx store.Tx) error {
		var tokens []string
		rows := make([]*model.Content, len(items))
		for i, it := range items {
			tokens = append(tokens, it.languages...)
			released, err := time.Parse(model.DateLayout, it.date)
			if err != nil {
				return err
			}
			rows[i] = &model.Content{
				OriginalTitle:       it.title,
				Title:               it.title,
				ReleaseDate:         released,
				VoteAverage:         it.rating,
				VoteCount:           it.votes,
				IsDeleted:           it.deleted,
				ProductionCompanyID: 1,
				GenreID:             1,
			}
		}
		if _, err := tx.EnsureRegistered(ctx, tokens); err != nil {
			return err
		}
		ids, err := tx.ResolveAll(ctx)
		if err != nil {
			return err
		}
		if err := tx.InsertContents(ctx, rows, 100); err != nil {
			return err
		}
		var links []model.ContentLanguage
		for i, it := range items {
			for _, l := range it.languages {
				links = append(links, model.ContentLanguage{ContentID: rows[i].ID, LanguageID: ids[l]})
			}
		}
		return tx.InsertContentLanguages(ctx, links, 100)
	})
	require.NoError(t, err)
	return s
}

func titles(items []model.Content) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
