package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/cli"
	"github.com/inovacc/pokedex/internal/core"
	"github.com/inovacc/pokedex/internal/query"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse stored pokemon",
	Long: `Display stored pokemon in an interactive list. Use arrow keys to navigate,
'f' to toggle a favorite, 'v' to show only favorites, '/' to search by name
and Enter to open the selected record.

When stdout is not a terminal, or with --plain, a table is printed instead.

Examples:
  pokedex list
  pokedex list --search saur
  pokedex list --favorites --plain
  pokedex list --json`,
	Aliases: []string{"ls"},
	RunE:    runList,
}

var (
	listSearch    string
	listFavorites bool
	listPlain     bool
	listJSON      bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show names containing this text (case-insensitive)")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Show only favorite pokemon")
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Print a table instead of the interactive list")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

// ListItem represents a pokemon in JSON output
type ListItem struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Favorite bool     `json:"favorite"`
	Sprites  bool     `json:"sprites_cached"`
}

func runList(cmd *cobra.Command, _ []string) error {
	catalog, err := app.catalog()
	if err != nil {
		return err
	}

	pred := query.Predicate{Search: listSearch, FavoritesOnly: listFavorites}
	out := cmd.OutOrStdout()

	if listJSON || listPlain || !isTerminal(out) {
		snap, err := catalog.Snapshot(pred)
		if err != nil {
			return err
		}

		if listJSON {
			items := make([]ListItem, 0, snap.Len())
			for _, p := range snap.Entries {
				items = append(items, ListItem{
					ID:       p.ID,
					Name:     p.Name,
					Types:    p.Types,
					Favorite: p.Favorite,
					Sprites:  p.HasSprites(),
				})
			}

			return printJSON(out, items)
		}

		printTable(out, snap)

		return nil
	}

	m, err := cli.NewBrowser(catalog, pred)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	browser := final.(cli.BrowserModel)
	if err := browser.Err(); err != nil {
		return err
	}

	if selected := browser.Selected(); selected != nil {
		d, err := catalog.Detail(selected.ID)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(out, cli.RenderDetail(d, false))
	}

	return nil
}

func printTable(w io.Writer, snap core.Snapshot) {
	if snap.Total == 0 {
		_, _ = fmt.Fprintln(w, "No pokemon stored.")
		_, _ = fmt.Fprintln(w, "\nDownload them with: pokedex fetch")

		return
	}

	if snap.Len() == 0 {
		_, _ = fmt.Fprintln(w, "No pokemon match.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTYPES\tFAV")

	for _, p := range snap.Entries {
		fav := ""
		if p.Favorite {
			fav = "*"
		}

		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, strings.Join(p.Types, "/"), fav)
	}

	_ = tw.Flush()

	_, _ = fmt.Fprintf(w, "\n%d shown, %d stored, %d expected\n", snap.Len(), snap.Total, snap.Expected)
}
