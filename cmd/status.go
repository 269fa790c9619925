package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local sync progress",
	Long: `Show how many pokemon are stored against the configured range, the next
missing ID, and the outcome of the last fetch and sprite runs.`,
	RunE: runStatus,
}

var statusJSON bool

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

// StatusOutput represents the status in JSON output
type StatusOutput struct {
	Stored         int            `json:"stored"`
	Expected       int            `json:"expected"`
	Favorites      int            `json:"favorites"`
	Missing        []int          `json:"missing"`
	NextMissingID  int            `json:"next_missing_id,omitempty"`
	WithoutSprites int            `json:"without_sprites"`
	LastFetch      *model.SyncRun `json:"last_fetch,omitempty"`
	LastSprites    *model.SyncRun `json:"last_sprites,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	catalog, err := app.catalog()
	if err != nil {
		return err
	}

	st, err := catalog.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if statusJSON {
		missing := st.Missing
		if missing == nil {
			missing = []int{}
		}

		return printJSON(out, StatusOutput{
			Stored:         st.Stored,
			Expected:       st.Expected,
			Favorites:      st.Favorites,
			Missing:        missing,
			NextMissingID:  st.NextMissingID(),
			WithoutSprites: st.WithoutSprites,
			LastFetch:      st.LastFetch,
			LastSprites:    st.LastSprites,
		})
	}

	_, _ = fmt.Fprintf(out, "Stored:          %d / %d\n", st.Stored, st.Expected)
	_, _ = fmt.Fprintf(out, "Favorites:       %d\n", st.Favorites)
	_, _ = fmt.Fprintf(out, "Without sprites: %d\n", st.WithoutSprites)

	if next := st.NextMissingID(); next > 0 {
		_, _ = fmt.Fprintf(out, "Next missing:    #%d (%d missing)\n", next, len(st.Missing))
	} else {
		_, _ = fmt.Fprintln(out, "Next missing:    none, range complete")
	}

	_, _ = fmt.Fprintln(out)
	printRun(out, "Last fetch:     ", st.LastFetch)
	printRun(out, "Last sprites:   ", st.LastSprites)

	if len(st.Missing) > 0 {
		_, _ = fmt.Fprintln(out, "\nRun 'pokedex fetch --resume' to download the missing records.")
	}

	return nil
}

func printRun(w io.Writer, label string, run *model.SyncRun) {
	if run == nil {
		_, _ = fmt.Fprintf(w, "%s never\n", label)
		return
	}

	state := "complete"

	switch {
	case run.Interrupted:
		state = "interrupted"
	case run.Failed > 0:
		state = fmt.Sprintf("%d failed", run.Failed)
	}

	_, _ = fmt.Fprintf(w, "%s %s, %d stored, %s (%s)\n",
		label, run.FinishedAt.Local().Format(time.DateTime), run.Stored, state, formatDuration(run.Duration()))
}
