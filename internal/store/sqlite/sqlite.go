// Package sqlite provides SQLite database storage for pokedex.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/inovacc/pokedex/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no pokemon has the requested ID.
var ErrNotFound = errors.New("pokemon not found")

// Store persists pokemon in a single SQLite file.
type Store struct {
	db      *sql.DB
	queries *Queries
	mu      sync.RWMutex
}

// New creates a new SQLite store with the given database path.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single writer; every write commits before the caller continues.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	migrator := NewMigrator(db)
	if err := migrator.MigrateUp(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{
		db:      db,
		queries: NewQueries(db),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks if the database is accessible.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// Migrator returns a migrator bound to this store's connection.
func (s *Store) Migrator() *Migrator {
	return NewMigrator(s.db)
}

// ============================================================================
// Pokemon Operations
// ============================================================================

// UpsertPokemon inserts p or updates the remote-sourced columns of an
// existing row with the same ID. Favorite and cached sprites are preserved.
func (s *Store) UpsertPokemon(p *model.Pokemon) error {
	if p == nil {
		return errors.New("pokemon is required")
	}

	if p.ID <= 0 {
		return fmt.Errorf("invalid pokemon id %d", p.ID)
	}

	params, err := modelToUpsert(p)
	if err != nil {
		return fmt.Errorf("encoding pokemon %d: %w", p.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := newContext()
	defer cancel()

	return s.queries.UpsertPokemon(ctx, params)
}

func (s *Store) GetPokemon(id int) (*model.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := newContext()
	defer cancel()

	row, err := s.queries.GetPokemon(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return rowToModel(row)
}

// GetAllPokemon returns every stored record ordered by ID.
func (s *Store) GetAllPokemon() ([]model.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := newContext()
	defer cancel()

	rows, err := s.queries.GetAllPokemon(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToModels(rows)
}

func (s *Store) ListPokemonIDs() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := newContext()
	defer cancel()

	ids, err := s.queries.ListPokemonIDs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}

	return out, nil
}

func (s *Store) CountPokemon() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := newContext()
	defer cancel()

	count, err := s.queries.CountPokemon(ctx)

	return int(count), err
}

func (s *Store) SetFavorite(id int, fav bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := newContext()
	defer cancel()

	n, err := s.queries.UpdateFavorite(ctx, int64(id), boolToInt64(fav))
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := newContext()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	q := s.queries.WithTx(tx)

	current, err := q.GetFavorite(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}

	if err != nil {
		return false, err
	}

	next := current != 1
	if _, err := q.UpdateFavorite(ctx, int64(id), boolToInt64(next)); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing transaction: %w", err)
	}

	return next, nil
}

// ListMissingSprites returns records lacking either cached image, ordered by ID.
func (s *Store) ListMissingSprites() ([]model.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := newContext()
	defer cancel()

	rows, err := s.queries.ListMissingSprites(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToModels(rows)
}

func (s *Store) SaveSprites(id int, sprite, shiny []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := newContext()
	defer cancel()

	n, err := s.queries.UpdateSprites(ctx, int64(id), sprite, shiny)
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// ============================================================================
// Sync Run Operations
// ============================================================================

func (s *Store) SaveSyncRun(run *model.SyncRun) error {
	if run == nil {
		return errors.New("sync run is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := newContext()
	defer cancel()

	return s.queries.InsertSyncRun(ctx, syncRunToRow(run))
}

// LastSyncRun returns the most recent run of kind, or nil if none was recorded.
func (s *Store) LastSyncRun(kind model.SyncKind) (*model.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := newContext()
	defer cancel()

	row, err := s.queries.LastSyncRun(ctx, string(kind))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return rowToSyncRun(row), nil
}

func newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
