package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/common"
	"github.com/inovacc/pokedex/internal/config"
	"github.com/inovacc/pokedex/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long: `Inspect the effective configuration.

Values come from, lowest precedence first: built-in defaults, config.yaml,
POKEDEX_* environment variables (POKEDEX_API_BASE_URL, POKEDEX_SYNC_TO, ...)
and command flags.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := app.cfg
		cfg.API.BaseURL = common.RedactURL(cfg.API.BaseURL)

		return printJSON(cmd.OutOrStdout(), cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and database file locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		cfgPath := app.configFile
		if cfgPath == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}

			cfgPath = p + " (not found, using defaults)"
		}

		dbFile := app.cfg.Store.Path
		if dbFile == "" {
			p, err := store.DefaultPath()
			if err != nil {
				return err
			}

			dbFile = p
		}

		_, _ = fmt.Fprintf(out, "config:   %s\n", cfgPath)
		_, _ = fmt.Fprintf(out, "database: %s\n", dbFile)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
