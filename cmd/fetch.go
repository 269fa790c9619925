package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/core"
	"github.com/inovacc/pokedex/internal/syncer"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download pokemon from PokeAPI into the local database",
	Long: `Fetch every pokemon in the half-open ID range [from, to) one at a time,
storing each record as soon as it arrives. A failed ID is reported and
skipped; the rest of the range continues.

Records already stored are updated in place, keeping their favorite flag
and cached sprites.

Examples:
  pokedex fetch
  pokedex fetch --from 152 --to 252
  pokedex fetch --resume`,
	RunE: runFetch,
}

var (
	fetchResume bool
	fetchPlain  bool
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().Int("from", 0, "First ID to fetch (default from config sync.from)")
	fetchCmd.Flags().Int("to", 0, "ID to stop before (default from config sync.to)")
	fetchCmd.Flags().BoolVar(&fetchResume, "resume", false, "Only fetch IDs of the range not stored yet")
	fetchCmd.Flags().BoolVar(&fetchPlain, "plain", false, "Print one line per record instead of the progress view")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	from, to := app.cfg.Sync.From, app.cfg.Sync.To

	if err := core.ValidateRange(from, to); err != nil {
		return err
	}

	title := "Fetching pokemon"
	if fetchResume {
		title = "Resuming fetch"
	}

	report, err := runBatch(cmd, title, fetchPlain, func(ctx context.Context, s *syncer.Syncer) *syncer.Report {
		if fetchResume {
			return s.Resume(ctx, from, to)
		}

		return s.Run(ctx, from, to)
	})
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)

	return report.Err
}
