package core

import (
	"fmt"
	"time"

	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/query"
	"github.com/inovacc/pokedex/internal/syncer"
)

// Store is the subset of store.Store the catalog reads and writes.
type Store interface {
	GetAllPokemon() ([]model.Pokemon, error)
	GetPokemon(id int) (*model.Pokemon, error)
	SetFavorite(id int, fav bool) error
	ToggleFavorite(id int) (bool, error)
	LastSyncRun(kind model.SyncKind) (*model.SyncRun, error)
}

// Catalog computes views over the stored records for one expected range.
type Catalog struct {
	store Store
	from  int
	to    int
	now   func() time.Time
}

// NewCatalog creates a Catalog expecting the IDs in [rng.From, rng.To).
func NewCatalog(s Store, rng model.SyncConfig) *Catalog {
	return &Catalog{
		store: s,
		from:  rng.From,
		to:    rng.To,
		now:   time.Now,
	}
}

// Snapshot is an immutable view of the catalog at one point in time.
type Snapshot struct {
	Predicate query.Predicate

	// Entries are the records matching Predicate, ID ascending
	Entries []model.Pokemon

	// Total counts every stored record, regardless of Predicate
	Total     int
	Favorites int

	// Expected is the size of the configured range; Missing lists the
	// IDs in that range not stored yet
	Expected int
	Missing  []int

	TakenAt time.Time
}

// Len returns the number of matching entries.
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// NextMissingID returns the lowest ID of the range not stored yet.
func (s Snapshot) NextMissingID() (int, bool) {
	if len(s.Missing) == 0 {
		return 0, false
	}

	return s.Missing[0], true
}

// Complete reports whether every expected record is stored.
func (s Snapshot) Complete() bool {
	return len(s.Missing) == 0
}

// Find returns the matching entry with the given ID.
func (s Snapshot) Find(id int) (model.Pokemon, bool) {
	for _, p := range s.Entries {
		if p.ID == id {
			return p, true
		}
	}

	return model.Pokemon{}, false
}

// Snapshot reads all stored records and applies pred.
func (c *Catalog) Snapshot(pred query.Predicate) (Snapshot, error) {
	all, err := c.store.GetAllPokemon()
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading pokemon: %w", err)
	}

	ids := make([]int, 0, len(all))
	favorites := 0

	for _, p := range all {
		ids = append(ids, p.ID)

		if p.Favorite {
			favorites++
		}
	}

	expected := max(c.to-c.from, 0)

	return Snapshot{
		Predicate: pred,
		Entries:   query.Apply(all, pred),
		Total:     len(all),
		Favorites: favorites,
		Expected:  expected,
		Missing:   syncer.MissingIDs(ids, c.from, c.to),
		TakenAt:   c.now(),
	}, nil
}

// SetFavorite writes the flag and returns a fresh snapshot for pred.
func (c *Catalog) SetFavorite(id int, fav bool, pred query.Predicate) (Snapshot, error) {
	if err := c.store.SetFavorite(id, fav); err != nil {
		return Snapshot{}, fmt.Errorf("setting favorite on #%d: %w", id, err)
	}

	return c.Snapshot(pred)
}

// ToggleFavorite flips the flag, returning the new value and a fresh snapshot for pred.
func (c *Catalog) ToggleFavorite(id int, pred query.Predicate) (bool, Snapshot, error) {
	fav, err := c.store.ToggleFavorite(id)
	if err != nil {
		return false, Snapshot{}, fmt.Errorf("toggling favorite on #%d: %w", id, err)
	}

	snap, err := c.Snapshot(pred)

	return fav, snap, err
}

// Detail is everything the detail view shows for one record.
type Detail struct {
	Pokemon model.Pokemon
	Stats   []model.Stat
	Highest model.Stat

	HasSprite bool
	HasShiny  bool
}

// Detail loads one record by ID.
func (c *Catalog) Detail(id int) (*Detail, error) {
	p, err := c.store.GetPokemon(id)
	if err != nil {
		return nil, fmt.Errorf("loading pokemon #%d: %w", id, err)
	}

	return &Detail{
		Pokemon:   *p,
		Stats:     p.Stats(),
		Highest:   p.HighestStat(),
		HasSprite: len(p.Sprite) > 0,
		HasShiny:  len(p.Shiny) > 0,
	}, nil
}
