package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/store"
)

type fakeFetcher struct {
	failIDs    map[int]error
	failImages map[string]error
	calls      []int
	onFetch    func(id int)
}

func (f *fakeFetcher) FetchPokemon(ctx context.Context, id int) (*model.Pokemon, error) {
	f.calls = append(f.calls, id)

	if f.onFetch != nil {
		f.onFetch(id)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err, ok := f.failIDs[id]; ok {
		return nil, err
	}

	return &model.Pokemon{
		ID:        id,
		Name:      fmt.Sprintf("pokemon-%d", id),
		Types:     []string{"normal"},
		HP:        id,
		SpriteURL: fmt.Sprintf("sprite/%d", id),
		ShinyURL:  fmt.Sprintf("shiny/%d", id),
	}, nil
}

func (f *fakeFetcher) FetchImage(_ context.Context, url string) ([]byte, error) {
	if err, ok := f.failImages[url]; ok {
		return nil, err
	}

	return []byte(url), nil
}

type failingStore struct {
	Store
	failUpsert map[int]bool
}

func (s *failingStore) UpsertPokemon(p *model.Pokemon) error {
	if s.failUpsert[p.ID] {
		return errors.New("disk full")
	}

	return s.Store.UpsertPokemon(p)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_StoresOneRecordPerID(t *testing.T) {
	s := newTestStore(t)
	f := &fakeFetcher{}

	report := New(f, s, Options{Logger: quietLogger()}).Run(context.Background(), 1, 11)

	require.NoError(t, report.Err)
	assert.Equal(t, 10, report.Stored)
	assert.Equal(t, 0, report.Failed)
	assert.True(t, report.Complete())
	assert.NotEmpty(t, report.RunID)

	all, err := s.GetAllPokemon()
	require.NoError(t, err)
	require.Len(t, all, 10)

	for i, p := range all {
		assert.Equal(t, i+1, p.ID)
		assert.False(t, p.FetchedAt.IsZero())
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, f.calls, "fetches must be sequential and ascending")
}

func TestRun_ContinuesPastFetchFailure(t *testing.T) {
	s := newTestStore(t)
	f := &fakeFetcher{failIDs: map[int]error{7: errors.New("bad response")}}

	var progress []int

	report := New(f, s, Options{
		Logger: quietLogger(),
		OnItem: func(res ItemResult, done, total int) {
			assert.Equal(t, 10, total)
			progress = append(progress, res.ID)
		},
	}).Run(context.Background(), 1, 11)

	assert.Equal(t, 9, report.Stored)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []int{7}, report.FailedIDs())
	assert.False(t, report.Complete())
	assert.Len(t, progress, 10)

	failed := report.Results[6]
	assert.Equal(t, 7, failed.ID)
	assert.Equal(t, StageFetch, failed.Stage)

	count, err := s.CountPokemon()
	require.NoError(t, err)
	assert.Equal(t, 9, count)

	_, err = s.GetPokemon(7)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRun_ContinuesPastPersistFailure(t *testing.T) {
	s := newTestStore(t)
	fs := &failingStore{Store: s, failUpsert: map[int]bool{2: true}}

	report := New(&fakeFetcher{}, fs, Options{Logger: quietLogger()}).Run(context.Background(), 1, 4)

	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, []int{2}, report.FailedIDs())
	assert.Equal(t, StagePersist, report.Results[1].Stage)
	assert.Equal(t, "pokemon-2", report.Results[1].Name)
}

func TestRun_RejectsMismatchedID(t *testing.T) {
	s := newTestStore(t)

	mismatched := &mismatchFetcher{}

	report := New(mismatched, s, Options{Logger: quietLogger()}).Run(context.Background(), 5, 6)

	assert.Equal(t, []int{5}, report.FailedIDs())

	count, err := s.CountPokemon()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

type mismatchFetcher struct{ fakeFetcher }

func (m *mismatchFetcher) FetchPokemon(ctx context.Context, id int) (*model.Pokemon, error) {
	return m.fakeFetcher.FetchPokemon(ctx, id+1)
}

func TestRun_RerunKeepsIDsUnique(t *testing.T) {
	s := newTestStore(t)
	syncer := New(&fakeFetcher{}, s, Options{Logger: quietLogger()})

	syncer.Run(context.Background(), 1, 6)
	require.NoError(t, s.SetFavorite(3, true))

	report := syncer.Run(context.Background(), 1, 6)
	assert.Equal(t, 5, report.Stored)

	ids, err := s.ListPokemonIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)

	p, err := s.GetPokemon(3)
	require.NoError(t, err)
	assert.True(t, p.Favorite, "re-fetch must keep the favorite flag")
}

func TestRun_EmptyRange(t *testing.T) {
	s := newTestStore(t)
	f := &fakeFetcher{}

	report := New(f, s, Options{Logger: quietLogger()}).Run(context.Background(), 5, 5)

	assert.Empty(t, report.Results)
	assert.Empty(t, f.calls)
	assert.True(t, report.Complete())
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakeFetcher{onFetch: func(id int) {
		if id == 4 {
			cancel()
		}
	}}

	report := New(f, s, Options{Logger: quietLogger()}).Run(ctx, 1, 11)

	assert.True(t, report.Interrupted)
	assert.Equal(t, 3, report.Stored)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []int{1, 2, 3, 4}, f.calls)
}

func TestRun_HugeRangeStreamsIDs(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var totals []int

	f := &fakeFetcher{onFetch: func(id int) {
		if id == 3 {
			cancel()
		}
	}}

	syncer := New(f, s, Options{
		Logger: quietLogger(),
		OnItem: func(_ ItemResult, _, total int) { totals = append(totals, total) },
	})

	report := syncer.Run(ctx, 1, math.MaxInt)

	assert.True(t, report.Interrupted)
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []int{1, 2, 3}, f.calls)
	assert.Equal(t, []int{math.MaxInt - 1, math.MaxInt - 1}, totals)
	assert.Equal(t, 2, report.InStore)
}

func TestResume_HugeRangeStreamsIDs(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.UpsertPokemon(&model.Pokemon{ID: 1, Name: "bulbasaur"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakeFetcher{onFetch: func(id int) {
		if id == 3 {
			cancel()
		}
	}}

	report := New(f, s, Options{Logger: quietLogger()}).Resume(ctx, 1, math.MaxInt)

	assert.True(t, report.Interrupted)
	assert.Equal(t, 2, report.From)
	assert.Equal(t, []int{2, 3}, f.calls)
	assert.Equal(t, 1, report.Stored)
}

func TestRun_RecordsSyncRun(t *testing.T) {
	s := newTestStore(t)
	f := &fakeFetcher{failIDs: map[int]error{2: errors.New("boom")}}

	report := New(f, s, Options{Logger: quietLogger()}).Run(context.Background(), 1, 4)
	assert.Equal(t, 2, report.InStore)

	run, err := s.LastSyncRun(model.SyncKindPokemon)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, report.RunID, run.RunID)
	assert.Equal(t, 2, run.Stored)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, 1, run.From)
	assert.Equal(t, 4, run.To)
}

func TestResume_FetchesOnlyMissing(t *testing.T) {
	s := newTestStore(t)
	syncer := New(&fakeFetcher{failIDs: map[int]error{7: errors.New("timeout")}}, s, Options{Logger: quietLogger()})

	first := syncer.Run(context.Background(), 1, 11)
	require.Equal(t, []int{7}, first.FailedIDs())

	f := &fakeFetcher{}
	report := New(f, s, Options{Logger: quietLogger()}).Resume(context.Background(), 1, 11)

	assert.Equal(t, []int{7}, f.calls)
	assert.Equal(t, 7, report.From)
	assert.Equal(t, 1, report.Stored)

	count, err := s.CountPokemon()
	require.NoError(t, err)
	assert.Equal(t, 10, count)

	f = &fakeFetcher{}
	report = New(f, s, Options{Logger: quietLogger()}).Resume(context.Background(), 1, 11)

	assert.Empty(t, f.calls)
	assert.Equal(t, 11, report.From)
	assert.True(t, report.Complete())
}

func TestStoreSprites(t *testing.T) {
	s := newTestStore(t)

	f := &fakeFetcher{failImages: map[string]error{"shiny/2": errors.New("404")}}
	syncer := New(f, s, Options{Logger: quietLogger()})

	syncer.Run(context.Background(), 1, 4)

	report := syncer.StoreSprites(context.Background())
	require.NoError(t, report.Err)
	assert.Equal(t, model.SyncKindSprites, report.Kind)
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, []int{2}, report.FailedIDs())
	assert.Equal(t, StageSprite, report.Results[1].Stage)

	p, err := s.GetPokemon(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("sprite/1"), p.Sprite)
	assert.Equal(t, []byte("shiny/1"), p.Shiny)

	missing, err := s.ListMissingSprites()
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, 2, missing[0].ID)

	// A second pass only retries what is still missing.
	f.failImages = nil
	report = syncer.StoreSprites(context.Background())
	assert.Equal(t, 1, report.Stored)
	assert.True(t, report.Complete())
}

func TestStoreSprites_MissingURL(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.UpsertPokemon(&model.Pokemon{ID: 132, Name: "ditto"}))

	report := New(&fakeFetcher{}, s, Options{Logger: quietLogger()}).StoreSprites(context.Background())

	require.Len(t, report.Results, 1)
	assert.ErrorIs(t, report.Results[0].Err, errNoSpriteURL)
}

func TestMissingIDs(t *testing.T) {
	tests := []struct {
		name     string
		stored   []int
		from, to int
		want     []int
	}{
		{name: "empty store", stored: nil, from: 1, to: 4, want: []int{1, 2, 3}},
		{name: "gap", stored: []int{1, 2, 4}, from: 1, to: 6, want: []int{3, 5}},
		{name: "complete", stored: []int{1, 2, 3}, from: 1, to: 4, want: nil},
		{name: "ignores ids outside range", stored: []int{10, 11}, from: 1, to: 3, want: []int{1, 2}},
		{name: "unsorted store", stored: []int{4, 1, 2}, from: 1, to: 6, want: []int{3, 5}},
		{name: "empty range", stored: []int{1}, from: 5, to: 5, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingIDs(tt.stored, tt.from, tt.to))
		})
	}
}

func TestMissing_StopsEarly(t *testing.T) {
	var got []int

	for id := range Missing([]int{2}, 1, math.MaxInt) {
		got = append(got, id)
		if len(got) == 3 {
			break
		}
	}

	assert.Equal(t, []int{1, 3, 4}, got)
}
