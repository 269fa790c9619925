package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/cli"
	"github.com/inovacc/pokedex/internal/core"
	"github.com/inovacc/pokedex/internal/model"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored pokemon",
	Long: `Show the types, base stats, highest stat, favorite flag and sprite cache
state of one stored pokemon.

Examples:
  pokedex show 25
  pokedex show 6 --shiny`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showShiny bool
	showJSON  bool
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showShiny, "shiny", false, "Show the shiny sprite state")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
}

// ShowOutput represents a pokemon in JSON output
type ShowOutput struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Types       []string     `json:"types"`
	Stats       []model.Stat `json:"stats"`
	HighestStat model.Stat   `json:"highest_stat"`
	Favorite    bool         `json:"favorite"`
	SpriteURL   string       `json:"sprite_url"`
	ShinyURL    string       `json:"shiny_url"`
	HasSprite   bool         `json:"has_sprite"`
	HasShiny    bool         `json:"has_shiny"`
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := core.ParseID(args[0])
	if err != nil {
		return err
	}

	catalog, err := app.catalog()
	if err != nil {
		return err
	}

	d, err := catalog.Detail(id)
	if err != nil {
		return err
	}

	if showJSON {
		p := d.Pokemon

		return printJSON(cmd.OutOrStdout(), ShowOutput{
			ID:          p.ID,
			Name:        p.Name,
			Types:       p.Types,
			Stats:       d.Stats,
			HighestStat: d.Highest,
			Favorite:    p.Favorite,
			SpriteURL:   p.SpriteURL,
			ShinyURL:    p.ShinyURL,
			HasSprite:   d.HasSprite,
			HasShiny:    d.HasShiny,
		})
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderDetail(d, showShiny))

	return nil
}
