// Package query filters stored pokemon with the catalog predicate.
//
// A [Predicate] combines an optional case-insensitive name substring and an
// optional favorites-only flag with logical AND. Empty search text and a
// false favorites flag each omit their clause.
package query

import (
	"sort"
	"strings"

	"github.com/inovacc/pokedex/internal/model"
)

// Predicate is the client-side filter applied to the full record set.
type Predicate struct {
	Search        string
	FavoritesOnly bool
}

// IsZero reports whether the predicate matches every record.
func (p Predicate) IsZero() bool {
	return strings.TrimSpace(p.Search) == "" && !p.FavoritesOnly
}

// Match reports whether r satisfies every active clause.
func (p Predicate) Match(r *model.Pokemon) bool {
	if p.FavoritesOnly && !r.Favorite {
		return false
	}

	search := strings.TrimSpace(p.Search)
	if search == "" {
		return true
	}

	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(search))
}

// Apply returns the matching records sorted by ID ascending. The input is not modified.
func Apply(records []model.Pokemon, p Predicate) []model.Pokemon {
	out := make([]model.Pokemon, 0, len(records))

	for i := range records {
		if p.Match(&records[i]) {
			out = append(out, records[i])
		}
	}

	SortByID(out)

	return out
}

// SortByID orders records by ID ascending.
func SortByID(records []model.Pokemon) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}
