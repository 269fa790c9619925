package syncer

import (
	"fmt"
	"time"

	"github.com/inovacc/pokedex/internal/model"
)

// Stage names the step of an item that failed
type Stage string

const (
	StageFetch   Stage = "fetch"
	StagePersist Stage = "persist"
	StageSprite  Stage = "sprite"
)

// ItemResult is the outcome for one ID
type ItemResult struct {
	ID    int
	Name  string
	Stage Stage
	Err   error
}

// OK reports whether the item was persisted
func (r ItemResult) OK() bool {
	return r.Err == nil
}

func (r ItemResult) String() string {
	if r.OK() {
		return fmt.Sprintf("#%d %s", r.ID, r.Name)
	}

	return fmt.Sprintf("#%d %s failed: %v", r.ID, r.Stage, r.Err)
}

// Report collects the results of one batch
type Report struct {
	RunID string
	Kind  model.SyncKind

	// From and To are the half-open range requested; zero for sprite passes
	From int
	To   int

	Results     []ItemResult
	Stored      int
	Failed      int
	Interrupted bool

	// InStore is the database record count after the batch, -1 if it could not be read
	InStore int

	// Err is set when the batch could not start, e.g. the store could not be read
	Err error

	StartedAt  time.Time
	FinishedAt time.Time
}

func (r *Report) add(res ItemResult) {
	r.Results = append(r.Results, res)

	if res.OK() {
		r.Stored++
	} else {
		r.Failed++
	}
}

// FailedIDs returns the IDs whose item failed, in processing order.
func (r *Report) FailedIDs() []int {
	var ids []int

	for _, res := range r.Results {
		if !res.OK() {
			ids = append(ids, res.ID)
		}
	}

	return ids
}

// Duration returns how long the batch took
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Complete reports whether every attempted item succeeded and the batch ran to the end.
func (r *Report) Complete() bool {
	return r.Err == nil && !r.Interrupted && r.Failed == 0
}

// Summary converts the report into its persisted form.
func (r *Report) Summary() *model.SyncRun {
	return &model.SyncRun{
		RunID:       r.RunID,
		Kind:        r.Kind,
		From:        r.From,
		To:          r.To,
		Stored:      r.Stored,
		Failed:      r.Failed,
		Interrupted: r.Interrupted,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
	}
}
