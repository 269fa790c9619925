// Package pokeapi is the remote fetch client for the PokeAPI REST service.
//
// A [Client] issues exactly one GET per call. Only HTTP 200 is accepted;
// failures are reported as [*BadResponseError], [*DecodeError] or
// [*TransportError] and are never retried.
package pokeapi
