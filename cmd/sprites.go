package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/syncer"
)

var spritesCmd = &cobra.Command{
	Use:   "sprites",
	Short: "Download and cache sprites for stored pokemon",
	Long: `Download the normal and shiny sprite of every stored pokemon that has no
cached images yet. Each record is saved as soon as both images arrive.`,
	RunE: runSprites,
}

var spritesPlain bool

func init() {
	rootCmd.AddCommand(spritesCmd)

	spritesCmd.Flags().BoolVar(&spritesPlain, "plain", false, "Print one line per record instead of the progress view")
}

func runSprites(cmd *cobra.Command, _ []string) error {
	report, err := runBatch(cmd, "Caching sprites", spritesPlain, func(ctx context.Context, s *syncer.Syncer) *syncer.Report {
		return s.StoreSprites(ctx)
	})
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)

	return report.Err
}
