package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/user/content-system/internal/model"
)

// lookupChunk bounds the number of bound parameters per IN clause
const lookupChunk = 500

// EnsureRegistered inserts every token that is not yet in the language
// registry and returns how many rows were created. Tokens are compared
// verbatim; calling it twice with the same input inserts nothing the second time.
func (s *GormStore) EnsureRegistered(ctx context.Context, tokens []string) (int, error) {
	wanted := distinct(tokens)
	if len(wanted) == 0 {
		return 0, nil
	}

	present := make(map[string]struct{}, len(wanted))
	for start := 0; start < len(wanted); start += lookupChunk {
		end := min(start+lookupChunk, len(wanted))

		var names []string
		err := s.db.WithContext(ctx).
			Model(&model.Language{}).
			Where("name IN ?", wanted[start:end]).
			Pluck("name", &names).Error
		if err != nil {
			return 0, fmt.Errorf("failed to look up languages: %w", err)
		}
		for _, n := range names {
			present[n] = struct{}{}
		}
	}

	var missing []model.Language
	for _, name := range wanted {
		if _, ok := present[name]; !ok {
			missing = append(missing, model.Language{Name: name})
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&missing, lookupChunk).Error; err != nil {
		return 0, fmt.Errorf("failed to register languages: %w", classify(err))
	}
	return len(missing), nil
}

// ResolveAll returns the full name to id mapping of the registry
func (s *GormStore) ResolveAll(ctx context.Context) (map[string]uint, error) {
	var langs []model.Language
	if err := s.db.WithContext(ctx).Find(&langs).Error; err != nil {
		return nil, fmt.Errorf("failed to load languages: %w", err)
	}

	ids := make(map[string]uint, len(langs))
	for _, l := range langs {
		ids[l.Name] = l.ID
	}
	return ids, nil
}

// distinct drops empty and repeated tokens and sorts the rest so inserts
// happen in a stable order across concurrent uploads
func distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
