package model

import "time"

// Stat names in canonical display order.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// StatNames lists the six base stats in the order PokeAPI reports them.
var StatNames = []string{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

type Pokemon struct {
	// ID is the national dex number, assigned by the remote source
	ID int `json:"id"`

	// Name is the lowercase API name
	Name string `json:"name"`

	// Types are the ordered type tags, primary type first
	Types []string `json:"types"`

	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`

	// Favorite is toggled by the user only
	Favorite bool `json:"favorite"`

	// SpriteURL and ShinyURL are the remote image locations
	SpriteURL string `json:"sprite_url"`
	ShinyURL  string `json:"shiny_url"`

	// Sprite and Shiny hold the cached image bytes once backfilled
	Sprite []byte `json:"sprite,omitempty"`
	Shiny  []byte `json:"shiny,omitempty"`

	// FetchedAt is when the record was last written by a sync
	FetchedAt time.Time `json:"fetched_at"`
}

// Stat is a single named base stat.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Stats returns the six base stats in canonical order.
func (p *Pokemon) Stats() []Stat {
	return []Stat{
		{Name: StatHP, Value: p.HP},
		{Name: StatAttack, Value: p.Attack},
		{Name: StatDefense, Value: p.Defense},
		{Name: StatSpecialAttack, Value: p.SpecialAttack},
		{Name: StatSpecialDefense, Value: p.SpecialDefense},
		{Name: StatSpeed, Value: p.Speed},
	}
}

// HighestStat returns the largest base stat. Ties go to the earlier stat.
func (p *Pokemon) HighestStat() Stat {
	stats := p.Stats()
	best := stats[0]

	for _, s := range stats[1:] {
		if s.Value > best.Value {
			best = s
		}
	}

	return best
}

// SetStat assigns a stat by its API name. Unknown names are ignored.
func (p *Pokemon) SetStat(name string, value int) {
	switch name {
	case StatHP:
		p.HP = value
	case StatAttack:
		p.Attack = value
	case StatDefense:
		p.Defense = value
	case StatSpecialAttack:
		p.SpecialAttack = value
	case StatSpecialDefense:
		p.SpecialDefense = value
	case StatSpeed:
		p.Speed = value
	}
}

// HasSprites reports whether both images are cached.
func (p *Pokemon) HasSprites() bool {
	return len(p.Sprite) > 0 && len(p.Shiny) > 0
}

// PrimaryType returns the first type tag, or "" when none is known.
func (p *Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}

	return p.Types[0]
}
