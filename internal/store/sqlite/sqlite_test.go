package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/pokedex/internal/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return s
}

func bulbasaur() *model.Pokemon {
	return &model.Pokemon{
		ID:             1,
		Name:           "bulbasaur",
		Types:          []string{"grass", "poison"},
		HP:             45,
		Attack:         49,
		Defense:        49,
		SpecialAttack:  65,
		SpecialDefense: 65,
		Speed:          45,
		SpriteURL:      "https://img.example/1.png",
		ShinyURL:       "https://img.example/shiny/1.png",
		FetchedAt:      time.UnixMilli(1_700_000_000_000),
	}
}

func TestStore_Ping(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Ping())
}

func TestStore_MigrationsApplied(t *testing.T) {
	s := setupTestStore(t)

	m := s.Migrator()

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 4, version)

	pending, err := m.PendingMigrations()
	require.NoError(t, err)
	assert.Empty(t, pending)

	applied, err := m.AppliedMigrations()
	require.NoError(t, err)
	require.Len(t, applied, 4)
	assert.Equal(t, "create pokemon", applied[0].Description)
	assert.Equal(t, "add favorite", applied[1].Description)
}

func TestStore_MigrateDownAndUp(t *testing.T) {
	s := setupTestStore(t)
	m := s.Migrator()

	require.NoError(t, m.MigrateTo(1))

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	require.NoError(t, m.MigrateUp())

	version, err = m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 4, version)

	require.NoError(t, s.UpsertPokemon(bulbasaur()))
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertPokemon(bulbasaur()))
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)

	defer func() { _ = s.Close() }()

	count, err := s.CountPokemon()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_UpsertAndGet(t *testing.T) {
	s := setupTestStore(t)

	want := bulbasaur()
	require.NoError(t, s.UpsertPokemon(want))

	got, err := s.GetPokemon(1)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Types, got.Types)
	assert.Equal(t, want.Stats(), got.Stats())
	assert.Equal(t, want.SpriteURL, got.SpriteURL)
	assert.Equal(t, want.ShinyURL, got.ShinyURL)
	assert.True(t, want.FetchedAt.Equal(got.FetchedAt))
	assert.False(t, got.Favorite)
	assert.Nil(t, got.Sprite)
}

func TestStore_UpsertInvalid(t *testing.T) {
	s := setupTestStore(t)

	require.Error(t, s.UpsertPokemon(nil))
	require.Error(t, s.UpsertPokemon(&model.Pokemon{ID: 0, Name: "missingno"}))
}

func TestStore_UpsertKeepsOneRowPerID(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.UpsertPokemon(bulbasaur()))
	require.NoError(t, s.SetFavorite(1, true))
	require.NoError(t, s.SaveSprites(1, []byte("front"), []byte("shiny")))

	updated := bulbasaur()
	updated.HP = 50
	require.NoError(t, s.UpsertPokemon(updated))

	count, err := s.CountPokemon()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := s.GetPokemon(1)
	require.NoError(t, err)
	assert.Equal(t, 50, got.HP)
	assert.True(t, got.Favorite, "upsert must preserve favorite")
	assert.Equal(t, []byte("front"), got.Sprite, "upsert must preserve cached sprite")
}

func TestStore_GetPokemonNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPokemon(99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetAllPokemonOrderedByID(t *testing.T) {
	s := setupTestStore(t)

	for _, id := range []int{3, 1, 2} {
		p := bulbasaur()
		p.ID = id
		require.NoError(t, s.UpsertPokemon(p))
	}

	all, err := s.GetAllPokemon()
	require.NoError(t, err)
	require.Len(t, all, 3)

	for i, p := range all {
		assert.Equal(t, i+1, p.ID)
	}

	ids, err := s.ListPokemonIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestStore_Favorites(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.UpsertPokemon(bulbasaur()))

	fav, err := s.ToggleFavorite(1)
	require.NoError(t, err)
	assert.True(t, fav)

	got, err := s.GetPokemon(1)
	require.NoError(t, err)
	assert.True(t, got.Favorite)

	fav, err = s.ToggleFavorite(1)
	require.NoError(t, err)
	assert.False(t, fav)

	require.NoError(t, s.SetFavorite(1, true))

	got, err = s.GetPokemon(1)
	require.NoError(t, err)
	assert.True(t, got.Favorite)

	_, err = s.ToggleFavorite(42)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.SetFavorite(42, true), ErrNotFound)
}

func TestStore_Sprites(t *testing.T) {
	s := setupTestStore(t)

	for _, id := range []int{1, 2} {
		p := bulbasaur()
		p.ID = id
		require.NoError(t, s.UpsertPokemon(p))
	}

	missing, err := s.ListMissingSprites()
	require.NoError(t, err)
	require.Len(t, missing, 2)

	require.NoError(t, s.SaveSprites(1, []byte("a"), []byte("b")))

	missing, err = s.ListMissingSprites()
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, 2, missing[0].ID)

	got, err := s.GetPokemon(1)
	require.NoError(t, err)
	assert.True(t, got.HasSprites())

	require.ErrorIs(t, s.SaveSprites(7, []byte("a"), []byte("b")), ErrNotFound)
}

func TestStore_SyncRuns(t *testing.T) {
	s := setupTestStore(t)

	run, err := s.LastSyncRun(model.SyncKindPokemon)
	require.NoError(t, err)
	assert.Nil(t, run)

	start := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, s.SaveSyncRun(&model.SyncRun{
		RunID: "first", Kind: model.SyncKindPokemon, From: 1, To: 11,
		Stored: 9, Failed: 1, StartedAt: start, FinishedAt: start.Add(time.Second),
	}))
	require.NoError(t, s.SaveSyncRun(&model.SyncRun{
		RunID: "second", Kind: model.SyncKindPokemon, From: 7, To: 8,
		Stored: 1, StartedAt: start.Add(time.Minute), FinishedAt: start.Add(2 * time.Minute),
	}))
	require.NoError(t, s.SaveSyncRun(&model.SyncRun{
		RunID: "sprites", Kind: model.SyncKindSprites, Interrupted: true,
		StartedAt: start, FinishedAt: start.Add(time.Second),
	}))

	run, err = s.LastSyncRun(model.SyncKindPokemon)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "second", run.RunID)
	assert.Equal(t, time.Minute, run.Duration())

	run, err = s.LastSyncRun(model.SyncKindSprites)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.True(t, run.Interrupted)
}
