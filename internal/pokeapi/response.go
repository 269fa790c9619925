package pokeapi

import (
	"errors"
	"sort"

	"github.com/inovacc/pokedex/internal/model"
)

// pokemonResponse mirrors the subset of GET /pokemon/{id} that is stored.
type pokemonResponse struct {
	ID      *int          `json:"id"`
	Name    *string       `json:"name"`
	Types   []typeSlot    `json:"types"`
	Stats   []statEntry   `json:"stats"`
	Sprites spriteSection `json:"sprites"`
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type statEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     namedResource `json:"stat"`
}

type spriteSection struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

var (
	errMissingID   = errors.New("missing id")
	errMissingName = errors.New("missing name")
)

func (r *pokemonResponse) toModel() (*model.Pokemon, error) {
	if r.ID == nil {
		return nil, errMissingID
	}

	if r.Name == nil || *r.Name == "" {
		return nil, errMissingName
	}

	slots := make([]typeSlot, len(r.Types))
	copy(slots, r.Types)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Slot < slots[j].Slot
	})

	types := make([]string, 0, len(slots))
	for _, s := range slots {
		types = append(types, s.Type.Name)
	}

	p := &model.Pokemon{
		ID:    *r.ID,
		Name:  *r.Name,
		Types: types,
	}

	for _, s := range r.Stats {
		p.SetStat(s.Stat.Name, s.BaseStat)
	}

	if r.Sprites.FrontDefault != nil {
		p.SpriteURL = *r.Sprites.FrontDefault
	}

	if r.Sprites.FrontShiny != nil {
		p.ShinyURL = *r.Sprites.FrontShiny
	}

	return p, nil
}
