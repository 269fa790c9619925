// Package store provides the storage abstraction layer for pokedex.
//
// The package defines the [Store] interface which abstracts all database
// operations. The default backend is SQLite (internal/store/sqlite) with
// embedded schema migrations; building with -tags bolt swaps in a BoltDB
// backend with the same semantics.
//
// # Store Interface
//
// The [Store] interface defines methods for:
//   - Pokemon upsert and lookup (UpsertPokemon, GetPokemon, GetAllPokemon)
//   - Favorite mutation (SetFavorite, ToggleFavorite)
//   - Sprite backfill (ListMissingSprites, SaveSprites)
//   - Sync history (SaveSyncRun, LastSyncRun)
//
// # Explicit Handles
//
// There is no package-level instance. Commands open one handle and pass it
// to every component that reads or writes:
//
//	s, err := store.Open(cfg.Store.Path)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// UpsertPokemon updates an existing ID in place, so a store never holds two
// records with the same ID.
package store
