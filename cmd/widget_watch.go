package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/application"
	"github.com/inovacc/pokedex/internal/params"
	"github.com/inovacc/pokedex/internal/process"
	"github.com/inovacc/pokedex/internal/store"
	"github.com/inovacc/pokedex/internal/widget"
)

var widgetWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the widget timeline on a schedule",
	Long: `Print a fresh widget timeline now and then on every tick of a cron
schedule until interrupted.

The schedule accepts standard five-field cron specs and descriptors such as
@hourly or "@every 10m".

Examples:
  pokedex widget watch
  pokedex widget watch --schedule "@every 15m"
  pokedex widget watch --out widget.json`,
	RunE: runWidgetWatch,
}

func init() {
	widgetCmd.AddCommand(widgetWatchCmd)

	widgetWatchCmd.Flags().String("schedule", "", "Cron schedule (default from config widget.schedule)")
}

func runWidgetWatch(cmd *cobra.Command, _ []string) error {
	provider, err := newWidgetProvider()
	if err != nil {
		return err
	}

	lockPath, err := watchLockPath()
	if err != nil {
		return err
	}

	lock, err := process.Acquire(lockPath, application.AppName)
	if err != nil {
		return fmt.Errorf("widget watch: %w", err)
	}

	defer func() {
		if err := lock.Release(); err != nil {
			app.logger.Warn("failed to release watch lock", "error", err)
		}
	}()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	schedule := app.cfg.Widget.Schedule

	app.logger.Info("watching widget timeline", "schedule", schedule)

	return provider.Watch(ctx, schedule, func(tl widget.Timeline) {
		if widgetOut != "" {
			if err := writeTimeline(out, tl); err != nil {
				app.logger.Error("failed to write widget timeline", "error", err)
			}

			return
		}

		if widgetJSON {
			_ = printJSON(out, tl)
			return
		}

		_, _ = fmt.Fprintln(out, "---")
		printTimeline(out, tl)
	})
}

// watchLockPath places the lock next to the database, so watches over
// different databases do not block each other.
func watchLockPath() (string, error) {
	dbFile := app.cfg.Store.Path
	if dbFile == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return "", err
		}

		dbFile = p
	}

	return filepath.Join(filepath.Dir(dbFile), params.WatchLockFile), nil
}
