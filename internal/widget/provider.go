package widget

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/inovacc/pokedex/internal/model"
)

// ReloadPolicy tells the host when to ask for the next timeline.
type ReloadPolicy string

// PolicyAtEnd requests a new timeline once the last entry's date has passed.
const PolicyAtEnd ReloadPolicy = "atEnd"

const (
	DefaultEntries  = 5
	DefaultInterval = time.Hour
)

// Entry is one scheduled widget state.
type Entry struct {
	Date        time.Time     `json:"date"`
	Pokemon     model.Pokemon `json:"pokemon"`
	Placeholder bool          `json:"placeholder"`
}

// Timeline is an ordered list of entries and the reload policy.
type Timeline struct {
	Entries []Entry      `json:"entries"`
	Policy  ReloadPolicy `json:"policy"`
}

// Source is the read side of the store the provider samples from.
type Source interface {
	GetAllPokemon() ([]model.Pokemon, error)
}

// Options configures a Provider
type Options struct {
	Entries  int
	Interval time.Duration
	Logger   *slog.Logger

	// Rand overrides the sampler, for deterministic tests
	Rand *rand.Rand
}

// Provider produces widget entries from a Source.
type Provider struct {
	source   Source
	entries  int
	interval time.Duration
	logger   *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewProvider creates a Provider. Zero options fall back to the defaults.
func NewProvider(source Source, opts Options) *Provider {
	entries := opts.Entries
	if entries <= 0 {
		entries = DefaultEntries
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	return &Provider{
		source:   source,
		entries:  entries,
		interval: interval,
		logger:   logger,
		rnd:      rnd,
	}
}

// Placeholder returns the fixed entry shown before any data exists.
func (p *Provider) Placeholder() Entry {
	return Entry{
		Date: time.Now(),
		Pokemon: model.Pokemon{
			ID:    1,
			Name:  "bulbasaur",
			Types: []string{"grass", "poison"},
		},
		Placeholder: true,
	}
}

// Snapshot returns one randomly chosen stored record dated now.
func (p *Provider) Snapshot(now time.Time) Entry {
	records, err := p.source.GetAllPokemon()
	if err != nil {
		p.logger.Warn("widget falling back to placeholder", slog.Any("error", err))
	}

	return p.sample(records, now)
}

// Timeline returns the configured number of entries spaced by the interval,
// starting at now. Each entry is sampled independently.
func (p *Provider) Timeline(now time.Time) Timeline {
	records, err := p.source.GetAllPokemon()
	if err != nil {
		p.logger.Warn("widget falling back to placeholder", slog.Any("error", err))
	}

	entries := make([]Entry, 0, p.entries)
	for i := range p.entries {
		entries = append(entries, p.sample(records, now.Add(time.Duration(i)*p.interval)))
	}

	return Timeline{Entries: entries, Policy: PolicyAtEnd}
}

func (p *Provider) sample(records []model.Pokemon, at time.Time) Entry {
	if len(records) == 0 {
		e := p.Placeholder()
		e.Date = at

		return e
	}

	p.mu.Lock()
	i := p.rnd.IntN(len(records))
	p.mu.Unlock()

	return Entry{Date: at, Pokemon: records[i]}
}
