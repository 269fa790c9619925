package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/encoding"
	"github.com/inovacc/pokedex/internal/widget"
)

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Print the widget timeline",
	Long: `Print the home-screen widget timeline: a number of randomly chosen stored
pokemon, one per interval starting now. With an empty database every entry
is the placeholder.

With --snapshot only one entry for the current moment is produced.

Examples:
  pokedex widget
  pokedex widget --snapshot
  pokedex widget --entries 3 --interval 30m --json
  pokedex widget --out ~/.cache/pokedex/widget.json`,
	RunE: runWidget,
}

var (
	widgetJSON     bool
	widgetOut      string
	widgetSnapshot bool
)

func init() {
	rootCmd.AddCommand(widgetCmd)

	widgetCmd.PersistentFlags().Int("entries", 0, "Number of entries (default from config widget.entries)")
	widgetCmd.PersistentFlags().Duration("interval", 0, "Time between entries (default from config widget.interval)")
	widgetCmd.PersistentFlags().BoolVar(&widgetJSON, "json", false, "Output as JSON")
	widgetCmd.PersistentFlags().StringVarP(&widgetOut, "out", "o", "", "Write the timeline as JSON to this file instead of stdout")
	widgetCmd.Flags().BoolVar(&widgetSnapshot, "snapshot", false, "Produce a single entry for now instead of a timeline")
}

func newWidgetProvider() (*widget.Provider, error) {
	s, err := app.openStore()
	if err != nil {
		return nil, err
	}

	return widget.NewProvider(s, widget.Options{
		Entries:  app.cfg.Widget.Entries,
		Interval: app.cfg.Widget.Interval,
		Logger:   app.logger,
	}), nil
}

func runWidget(cmd *cobra.Command, _ []string) error {
	provider, err := newWidgetProvider()
	if err != nil {
		return err
	}

	if widgetSnapshot {
		return runWidgetSnapshot(cmd.OutOrStdout(), provider)
	}

	tl := provider.Timeline(time.Now())

	if widgetOut != "" {
		return writeTimeline(cmd.OutOrStdout(), tl)
	}

	if widgetJSON {
		return printJSON(cmd.OutOrStdout(), tl)
	}

	printTimeline(cmd.OutOrStdout(), tl)

	return nil
}

func runWidgetSnapshot(w io.Writer, provider *widget.Provider) error {
	e := provider.Snapshot(time.Now())

	switch {
	case widgetOut != "":
		if err := encoding.WriteJSON(widgetOut, e); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "Wrote snapshot to %s\n", widgetOut)

		return nil
	case widgetJSON:
		return printJSON(w, e)
	}

	printEntry(w, e)

	return nil
}

// writeTimeline replaces the --out file, for a widget host polling it.
func writeTimeline(w io.Writer, tl widget.Timeline) error {
	if err := encoding.WriteJSON(widgetOut, tl); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Wrote %d entries to %s\n", len(tl.Entries), widgetOut)

	return nil
}

func printTimeline(w io.Writer, tl widget.Timeline) {
	for _, e := range tl.Entries {
		printEntry(w, e)
	}

	_, _ = fmt.Fprintf(w, "reload: %s\n", tl.Policy)
}

func printEntry(w io.Writer, e widget.Entry) {
	name := fmt.Sprintf("#%d %s", e.Pokemon.ID, e.Pokemon.Name)
	if e.Placeholder {
		name += " (placeholder)"
	}

	_, _ = fmt.Fprintf(w, "%s  %-24s %s\n", e.Date.Format("15:04"), name, strings.Join(e.Pokemon.Types, "/"))
}
