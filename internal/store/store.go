package store

import (
	"errors"

	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/params"
)

// ErrNotFound is returned when no pokemon has the requested ID.
var ErrNotFound = errors.New("pokemon not found")

// Store defines the database operations used by the app.
//
// Every write commits before returning.
type Store interface {
	Ping() error
	Close() error

	// Pokemon operations
	UpsertPokemon(p *model.Pokemon) error
	GetPokemon(id int) (*model.Pokemon, error)
	GetAllPokemon() ([]model.Pokemon, error)
	ListPokemonIDs() ([]int, error)
	CountPokemon() (int, error)
	SetFavorite(id int, fav bool) error
	ToggleFavorite(id int) (bool, error)

	// Sprite cache operations
	ListMissingSprites() ([]model.Pokemon, error)
	SaveSprites(id int, sprite, shiny []byte) error

	// Sync run history
	SaveSyncRun(run *model.SyncRun) error
	LastSyncRun(kind model.SyncKind) (*model.SyncRun, error)
}

// Open opens the store at path, or at the default location in the app data
// directory when path is empty.
func Open(path string) (Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}

		path = p
	}

	instance, err := initDB(path)
	if err != nil {
		return nil, err
	}

	if err := instance.Ping(); err != nil {
		_ = instance.Close()
		return nil, err
	}

	return instance, nil
}

// DefaultPath returns the database file used when no path is configured.
func DefaultPath() (string, error) {
	return params.DataPath(defaultFile)
}
