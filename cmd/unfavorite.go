package cmd

import (
	"github.com/spf13/cobra"
)

var unfavoriteCmd = &cobra.Command{
	Use:     "unfavorite <id>",
	Short:   "Remove favorite mark from a pokemon",
	Aliases: []string{"unfav"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFavorite(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(unfavoriteCmd)
}
