package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/core"
	"github.com/inovacc/pokedex/internal/query"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Mark a pokemon as favorite",
	Long: `Mark a stored pokemon as favorite. Favorites can be listed with
'pokedex list --favorites'.

Examples:
  pokedex favorite 25
  pokedex favorite --toggle 25`,
	Aliases: []string{"fav"},
	Args:    cobra.ExactArgs(1),
	RunE:    runFavorite,
}

var favoriteToggle bool

func init() {
	rootCmd.AddCommand(favoriteCmd)

	favoriteCmd.Flags().BoolVarP(&favoriteToggle, "toggle", "t", false, "Flip the current favorite flag")
}

func runFavorite(cmd *cobra.Command, args []string) error {
	if favoriteToggle {
		return toggleFavorite(cmd, args[0])
	}

	return setFavorite(cmd, args[0], true)
}

func setFavorite(cmd *cobra.Command, arg string, fav bool) error {
	id, err := core.ParseID(arg)
	if err != nil {
		return err
	}

	catalog, err := app.catalog()
	if err != nil {
		return err
	}

	snap, err := catalog.SetFavorite(id, fav, query.Predicate{FavoritesOnly: true})
	if err != nil {
		return err
	}

	printFavoriteResult(cmd, id, fav, snap)

	return nil
}

func toggleFavorite(cmd *cobra.Command, arg string) error {
	id, err := core.ParseID(arg)
	if err != nil {
		return err
	}

	catalog, err := app.catalog()
	if err != nil {
		return err
	}

	fav, snap, err := catalog.ToggleFavorite(id, query.Predicate{FavoritesOnly: true})
	if err != nil {
		return err
	}

	printFavoriteResult(cmd, id, fav, snap)

	return nil
}

func printFavoriteResult(cmd *cobra.Command, id int, fav bool, favorites core.Snapshot) {
	out := cmd.OutOrStdout()

	if fav {
		_, _ = fmt.Fprintf(out, "✓ Marked #%d as favorite\n", id)
	} else {
		_, _ = fmt.Fprintf(out, "✓ Removed #%d from favorites\n", id)
	}

	_, _ = fmt.Fprintf(out, "%d favorite(s)\n", favorites.Len())
}
