package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inovacc/pokedex/internal/core"
	"github.com/inovacc/pokedex/internal/model"
)

func TestRenderDetail(t *testing.T) {
	p := model.Pokemon{
		ID:        25,
		Name:      "pikachu",
		Types:     []string{"electric"},
		HP:        35,
		Attack:    55,
		Speed:     90,
		Favorite:  true,
		SpriteURL: "https://example.com/25.png",
		ShinyURL:  "https://example.com/shiny/25.png",
		Sprite:    []byte("png-bytes"),
	}

	d := &core.Detail{Pokemon: p, Stats: p.Stats(), Highest: p.HighestStat(), HasSprite: true}

	out := RenderDetail(d, false)
	assert.Contains(t, out, "#025 pikachu")
	assert.Contains(t, out, "electric")
	assert.Contains(t, out, "Highest stat: speed (90)")
	assert.Contains(t, out, "Sprite: ")
	assert.Contains(t, out, "cached (9 bytes)")

	out = RenderDetail(d, true)
	assert.Contains(t, out, "Shiny sprite")
	assert.Contains(t, out, "not cached")
}

func TestStatBar(t *testing.T) {
	tests := []struct {
		value int
		full  int
	}{
		{value: 0, full: 0},
		{value: 255, full: barWidth},
		{value: 300, full: barWidth},
		{value: 85, full: 10},
	}

	for _, tt := range tests {
		bar := statBar(tt.value)
		assert.Equal(t, tt.full, countRune(bar, '█'), "value %d", tt.value)
		assert.Equal(t, barWidth-tt.full, countRune(bar, '░'), "value %d", tt.value)
	}
}

func countRune(s string, r rune) int {
	n := 0

	for _, c := range s {
		if c == r {
			n++
		}
	}

	return n
}
