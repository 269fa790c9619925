package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/cli"
	"github.com/inovacc/pokedex/internal/pokeapi"
	"github.com/inovacc/pokedex/internal/syncer"
)

// batchFunc runs one sync pass with the given syncer.
type batchFunc func(ctx context.Context, s *syncer.Syncer) *syncer.Report

// runBatch builds the client and syncer and runs fn, with a progress UI on a
// terminal and one line per item otherwise.
func runBatch(cmd *cobra.Command, title string, plain bool, fn batchFunc) (*syncer.Report, error) {
	s, err := app.openStore()
	if err != nil {
		return nil, err
	}

	client, err := pokeapi.NewFromConfig(app.cfg.API, app.logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()

	if plain || !isTerminal(out) {
		run := func(ctx context.Context) *syncer.Report {
			return fn(ctx, syncer.New(client, s, syncer.Options{
				Logger: app.logger,
				OnItem: printItem(out),
			}))
		}

		_, _ = fmt.Fprintf(out, "%s...\n", title)

		return run(ctx), nil
	}

	// Logs would tear the progress view.
	quiet := slog.New(slog.DiscardHandler)

	m := cli.NewSyncModel(ctx, title, func(ctx context.Context, onItem func(syncer.ItemResult, int, int)) *syncer.Report {
		return fn(ctx, syncer.New(client, s, syncer.Options{Logger: quiet, OnItem: onItem}))
	})

	if _, err := tea.NewProgram(m, tea.WithOutput(out)).Run(); err != nil {
		return nil, err
	}

	report := m.Report()
	if report == nil {
		return nil, fmt.Errorf("%s did not finish", title)
	}

	return report, nil
}

func printItem(w io.Writer) func(res syncer.ItemResult, done, total int) {
	return func(res syncer.ItemResult, done, total int) {
		width := len(fmt.Sprint(total))

		status := "ok"
		if !res.OK() {
			status = "FAILED"
		}

		_, _ = fmt.Fprintf(w, "[%*d/%d] %-6s %s\n", width, done, total, status, res)
	}
}
