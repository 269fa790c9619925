package core

import (
	"fmt"

	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/query"
)

// Status summarises local progress against the expected range.
type Status struct {
	Stored    int
	Expected  int
	Favorites int

	// Missing lists the IDs of the range not stored yet
	Missing []int

	// WithoutSprites counts stored records whose images are not cached
	WithoutSprites int

	// LastFetch and LastSprites are nil until a run of that kind finishes
	LastFetch   *model.SyncRun
	LastSprites *model.SyncRun
}

// NextMissingID returns the lowest missing ID, or 0 when the range is complete.
func (s *Status) NextMissingID() int {
	if len(s.Missing) == 0 {
		return 0
	}

	return s.Missing[0]
}

// Status gathers counts and the most recent sync runs.
func (c *Catalog) Status() (*Status, error) {
	snap, err := c.Snapshot(query.Predicate{})
	if err != nil {
		return nil, err
	}

	st := &Status{
		Stored:    snap.Total,
		Expected:  snap.Expected,
		Favorites: snap.Favorites,
		Missing:   snap.Missing,
	}

	for i := range snap.Entries {
		if !snap.Entries[i].HasSprites() {
			st.WithoutSprites++
		}
	}

	if st.LastFetch, err = c.store.LastSyncRun(model.SyncKindPokemon); err != nil {
		return nil, fmt.Errorf("loading last fetch run: %w", err)
	}

	if st.LastSprites, err = c.store.LastSyncRun(model.SyncKindSprites); err != nil {
		return nil, fmt.Errorf("loading last sprite run: %w", err)
	}

	return st, nil
}
