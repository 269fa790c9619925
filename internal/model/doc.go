// Package model defines the data structures used throughout pokedex.
//
// These models are shared by the fetch client, the store backends and the
// presentation layer. Each store backend converts to and from its own row
// representation.
//
// # Pokemon
//
// The [Pokemon] struct is the only catalog entity:
//
//	type Pokemon struct {
//	    ID             int      // Primary key assigned by PokeAPI
//	    Name           string   // Lowercase API name ("bulbasaur")
//	    Types          []string // Ordered type tags ("grass", "poison")
//	    HP, Attack ... int      // The six base stats
//	    Favorite       bool     // User flag, false until toggled
//	    Sprite, Shiny  []byte   // Cached images, nil until backfilled
//	}
//
// # SyncRun
//
// The [SyncRun] struct is the persisted summary of one sync batch.
//
// # Config
//
// The [Config] struct holds application configuration. Values are loaded by
// internal/config from defaults, the config file, POKEDEX_* variables and
// command-line flags, in that order.
package model
