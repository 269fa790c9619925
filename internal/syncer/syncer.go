package syncer

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/inovacc/pokedex/internal/model"
)

// Fetcher is the remote side of a sync.
type Fetcher interface {
	FetchPokemon(ctx context.Context, id int) (*model.Pokemon, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Store is the subset of store.Store a sync writes to.
type Store interface {
	UpsertPokemon(p *model.Pokemon) error
	ListPokemonIDs() ([]int, error)
	CountPokemon() (int, error)
	ListMissingSprites() ([]model.Pokemon, error)
	SaveSprites(id int, sprite, shiny []byte) error
	SaveSyncRun(run *model.SyncRun) error
}

// Options configures a Syncer
type Options struct {
	Logger *slog.Logger

	// OnItem is called after every item, in order
	OnItem func(res ItemResult, done, total int)

	// Now overrides the clock
	Now func() time.Time
}

// Syncer runs sync batches against one fetcher and one store.
type Syncer struct {
	fetcher Fetcher
	store   Store
	logger  *slog.Logger
	onItem  func(res ItemResult, done, total int)
	now     func() time.Time
}

// New creates a Syncer
func New(fetcher Fetcher, store Store, opts Options) *Syncer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Syncer{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		onItem:  opts.OnItem,
		now:     now,
	}
}

func (s *Syncer) newReport(kind model.SyncKind, from, to int) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Kind:      kind,
		From:      from,
		To:        to,
		StartedAt: s.now(),
	}
}

// finish stamps the report and records its summary. A failure to record is
// logged only.
func (s *Syncer) finish(r *Report) *Report {
	r.FinishedAt = s.now()

	logger := s.logger.With(
		slog.String("run_id", r.RunID),
		slog.String("kind", string(r.Kind)),
	)

	if err := s.store.SaveSyncRun(r.Summary()); err != nil {
		logger.Warn("failed to record sync run", slog.Any("error", err))
	}

	count, err := s.store.CountPokemon()
	if err != nil {
		logger.Warn("failed to count stored pokemon", slog.Any("error", err))
		count = -1
	}

	r.InStore = count

	logger.Info("sync finished",
		slog.Int("stored", r.Stored),
		slog.Int("in_store", r.InStore),
		slog.Int("failed", r.Failed),
		slog.Bool("interrupted", r.Interrupted),
		slog.Duration("duration", r.Duration()),
	)

	return r
}

// Run fetches and persists every ID in [from, to), strictly ascending.
func (s *Syncer) Run(ctx context.Context, from, to int) *Report {
	return s.runIDs(ctx, s.newReport(model.SyncKindPokemon, from, to), Missing(nil, from, to), rangeLen(from, to))
}

// Resume fetches only the IDs in [from, to) that are not stored yet.
func (s *Syncer) Resume(ctx context.Context, from, to int) *Report {
	stored, err := s.store.ListPokemonIDs()
	if err != nil {
		r := s.newReport(model.SyncKindPokemon, from, to)
		r.Err = fmt.Errorf("listing stored ids: %w", err)

		return s.finish(r)
	}

	total := rangeLen(from, to)

	for _, id := range stored {
		if id >= from && id < to {
			total--
		}
	}

	start := to
	for id := range Missing(stored, from, to) {
		start = id
		break
	}

	return s.runIDs(ctx, s.newReport(model.SyncKindPokemon, start, to), Missing(stored, from, to), total)
}

func (s *Syncer) runIDs(ctx context.Context, r *Report, ids iter.Seq[int], total int) *Report {
	s.logger.Info("sync started",
		slog.String("run_id", r.RunID),
		slog.Int("from", r.From),
		slog.Int("to", r.To),
		slog.Int("count", total),
	)

	done := 0

	for id := range ids {
		if ctx.Err() != nil {
			r.Interrupted = true
			break
		}

		res := s.syncOne(ctx, id)

		// A cancelled request is not an item failure.
		if !res.OK() && ctx.Err() != nil {
			r.Interrupted = true
			break
		}

		r.add(res)

		done++

		if s.onItem != nil {
			s.onItem(res, done, total)
		}
	}

	return s.finish(r)
}

func (s *Syncer) syncOne(ctx context.Context, id int) ItemResult {
	p, err := s.fetcher.FetchPokemon(ctx, id)
	if err == nil && p.ID != id {
		err = fmt.Errorf("requested id %d, received %d", id, p.ID)
	}

	if err != nil {
		s.logger.Warn("failed to fetch pokemon", slog.Int("id", id), slog.Any("error", err))
		return ItemResult{ID: id, Stage: StageFetch, Err: err}
	}

	p.FetchedAt = s.now()

	if err := s.store.UpsertPokemon(p); err != nil {
		s.logger.Warn("failed to persist pokemon", slog.Int("id", id), slog.Any("error", err))
		return ItemResult{ID: id, Name: p.Name, Stage: StagePersist, Err: err}
	}

	s.logger.Debug("stored pokemon", slog.Int("id", id), slog.String("name", p.Name))

	return ItemResult{ID: id, Name: p.Name}
}

var errNoSpriteURL = errors.New("no sprite url recorded")

// StoreSprites downloads both images for every stored record lacking them.
func (s *Syncer) StoreSprites(ctx context.Context) *Report {
	r := s.newReport(model.SyncKindSprites, 0, 0)

	pending, err := s.store.ListMissingSprites()
	if err != nil {
		r.Err = fmt.Errorf("listing records without sprites: %w", err)
		return s.finish(r)
	}

	s.logger.Info("sprite backfill started",
		slog.String("run_id", r.RunID),
		slog.Int("count", len(pending)),
	)

	for i := range pending {
		if ctx.Err() != nil {
			r.Interrupted = true
			break
		}

		res := s.storeSprites(ctx, &pending[i])
		if !res.OK() && ctx.Err() != nil {
			r.Interrupted = true
			break
		}

		r.add(res)

		if s.onItem != nil {
			s.onItem(res, i+1, len(pending))
		}
	}

	return s.finish(r)
}

func (s *Syncer) storeSprites(ctx context.Context, p *model.Pokemon) ItemResult {
	res := ItemResult{ID: p.ID, Name: p.Name}

	if p.SpriteURL == "" || p.ShinyURL == "" {
		res.Stage, res.Err = StageSprite, errNoSpriteURL
		s.logger.Warn("cannot backfill sprites", slog.Int("id", p.ID), slog.Any("error", res.Err))

		return res
	}

	sprite, err := s.fetcher.FetchImage(ctx, p.SpriteURL)
	if err != nil {
		res.Stage, res.Err = StageSprite, fmt.Errorf("sprite: %w", err)
		s.logger.Warn("failed to fetch sprite", slog.Int("id", p.ID), slog.Any("error", err))

		return res
	}

	shiny, err := s.fetcher.FetchImage(ctx, p.ShinyURL)
	if err != nil {
		res.Stage, res.Err = StageSprite, fmt.Errorf("shiny: %w", err)
		s.logger.Warn("failed to fetch shiny sprite", slog.Int("id", p.ID), slog.Any("error", err))

		return res
	}

	if err := s.store.SaveSprites(p.ID, sprite, shiny); err != nil {
		res.Stage, res.Err = StagePersist, err
		s.logger.Warn("failed to persist sprites", slog.Int("id", p.ID), slog.Any("error", err))

		return res
	}

	return res
}

// Missing yields the IDs in [from, to) absent from stored, ascending, walking
// the gaps between stored IDs without materialising the range.
func Missing(stored []int, from, to int) iter.Seq[int] {
	have := slices.Sorted(slices.Values(stored))

	return func(yield func(int) bool) {
		next := from

		for _, id := range have {
			if id < next {
				continue
			}

			if id >= to {
				break
			}

			for ; next < id; next++ {
				if !yield(next) {
					return
				}
			}

			next = id + 1
		}

		for ; next < to; next++ {
			if !yield(next) {
				return
			}
		}
	}
}

// MissingIDs returns the IDs in [from, to) absent from stored, ascending.
func MissingIDs(stored []int, from, to int) []int {
	return slices.Collect(Missing(stored, from, to))
}

func rangeLen(from, to int) int {
	if to <= from {
		return 0
	}

	return to - from
}
