package model

import "time"

// SyncKind identifies which pass produced a sync run.
type SyncKind string

const (
	SyncKindPokemon SyncKind = "pokemon"
	SyncKindSprites SyncKind = "sprites"
)

// SyncRun is the persisted summary of one batch.
type SyncRun struct {
	// RunID is a UUID assigned when the batch starts
	RunID string `json:"run_id"`

	Kind SyncKind `json:"kind"`

	// From and To describe the half-open ID range; zero for sprite passes
	From int `json:"from"`
	To   int `json:"to"`

	Stored      int  `json:"stored"`
	Failed      int  `json:"failed"`
	Interrupted bool `json:"interrupted"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns how long the run took.
func (r *SyncRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
