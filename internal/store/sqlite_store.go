//go:build !bolt

package store

import (
	"errors"

	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/params"
	"github.com/inovacc/pokedex/internal/store/sqlite"
)

const defaultFile = params.SQLiteFile

// SQLiteWrapper wraps the sqlite.Store to implement the Store interface.
type SQLiteWrapper struct {
	store *sqlite.Store
}

func initDB(path string) (Store, error) {
	s, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteWrapper{store: s}, nil
}

// mapErr translates backend sentinels to package-level ones.
func mapErr(err error) error {
	if errors.Is(err, sqlite.ErrNotFound) {
		return ErrNotFound
	}

	return err
}

func (w *SQLiteWrapper) Ping() error {
	return w.store.Ping()
}

func (w *SQLiteWrapper) Close() error {
	return w.store.Close()
}

func (w *SQLiteWrapper) UpsertPokemon(p *model.Pokemon) error {
	return w.store.UpsertPokemon(p)
}

func (w *SQLiteWrapper) GetPokemon(id int) (*model.Pokemon, error) {
	p, err := w.store.GetPokemon(id)
	return p, mapErr(err)
}

func (w *SQLiteWrapper) GetAllPokemon() ([]model.Pokemon, error) {
	return w.store.GetAllPokemon()
}

func (w *SQLiteWrapper) ListPokemonIDs() ([]int, error) {
	return w.store.ListPokemonIDs()
}

func (w *SQLiteWrapper) CountPokemon() (int, error) {
	return w.store.CountPokemon()
}

func (w *SQLiteWrapper) SetFavorite(id int, fav bool) error {
	return mapErr(w.store.SetFavorite(id, fav))
}

func (w *SQLiteWrapper) ToggleFavorite(id int) (bool, error) {
	fav, err := w.store.ToggleFavorite(id)
	return fav, mapErr(err)
}

func (w *SQLiteWrapper) ListMissingSprites() ([]model.Pokemon, error) {
	return w.store.ListMissingSprites()
}

func (w *SQLiteWrapper) SaveSprites(id int, sprite, shiny []byte) error {
	return mapErr(w.store.SaveSprites(id, sprite, shiny))
}

func (w *SQLiteWrapper) SaveSyncRun(run *model.SyncRun) error {
	return w.store.SaveSyncRun(run)
}

func (w *SQLiteWrapper) LastSyncRun(kind model.SyncKind) (*model.SyncRun, error) {
	return w.store.LastSyncRun(kind)
}
