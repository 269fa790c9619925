// Package core provides the catalog layer for Pokedex.
//
// This package sits between the store and the user interfaces. It never
// prints; commands and the terminal browser render what it returns.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - The store handle is passed in explicitly, there is no global database
//   - UI-specific logic belongs in the cli package, not here
//
// # Snapshots
//
// [Catalog.Snapshot] reads every stored record and applies a
// [query.Predicate]. A [Snapshot] is never updated in place: every mutating
// method ([Catalog.SetFavorite], [Catalog.ToggleFavorite]) returns a fresh
// one computed after the write has committed.
package core
