package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/pokedex/internal/core"
)

// maxStat scales the stat bars; no base stat exceeds it.
const maxStat = 255

const barWidth = 30

// RenderDetail renders one record for the show command.
func RenderDetail(d *core.Detail, shiny bool) string {
	p := d.Pokemon

	var b strings.Builder

	header := nameStyle.Render(fmt.Sprintf("#%03d %s", p.ID, p.Name))
	if p.Favorite {
		header += " ⭐"
	}

	b.WriteString(header)
	b.WriteString("\n")

	badges := make([]string, len(p.Types))
	for i, t := range p.Types {
		badges[i] = typeBadge(t)
	}

	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n\n")

	for _, s := range d.Stats {
		line := fmt.Sprintf("%-16s %3d %s", s.Name, s.Value, statBar(s.Value))
		if s.Name == d.Highest.Name {
			line = infoStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	_, _ = fmt.Fprintf(&b, "Highest stat: %s (%d)\n", d.Highest.Name, d.Highest.Value)

	label, url, size := "Sprite", p.SpriteURL, len(p.Sprite)
	if shiny {
		label, url, size = "Shiny sprite", p.ShinyURL, len(p.Shiny)
	}

	_, _ = fmt.Fprintf(&b, "%s: %s\n", label, spriteState(url, size))

	if !p.FetchedAt.IsZero() {
		b.WriteString(dimStyle.Render("Fetched " + p.FetchedAt.Format("2006-01-02 15:04")))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func statBar(v int) string {
	n := min(max(v*barWidth/maxStat, 0), barWidth)

	return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(strings.Repeat("█", n)) +
		dimStyle.Render(strings.Repeat("░", barWidth-n))
}

func spriteState(url string, size int) string {
	switch {
	case size > 0:
		return successStyle.Render(fmt.Sprintf("cached (%d bytes)", size))
	case url != "":
		return warningStyle.Render("not cached, run `pokedex sprites`") + dimStyle.Render(" "+url)
	default:
		return dimStyle.Render("unavailable")
	}
}
