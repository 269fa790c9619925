package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/application"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	dbPath    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A local Pokedex synced from PokeAPI",
	Long: `Pokedex downloads pokemon from PokeAPI into a local database and lets you
browse, search and favorite them offline.

Run 'pokedex fetch' first, then 'pokedex list' to browse.`,
	Version:           application.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	err := rootCmd.Execute()

	app.close()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "Config file (default is config.yaml in the app directory)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&dbPath, "db", "", "Database file (default is in the app directory)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
