package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/syncer"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// signalContext is cancelled on the first interrupt or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(w, string(data))

	return nil
}

// printReport prints the batch summary and the IDs that need another pass.
func printReport(w io.Writer, r *syncer.Report) {
	if r.Err != nil {
		_, _ = fmt.Fprintf(w, "Sync aborted: %v\n", r.Err)
		return
	}

	_, _ = fmt.Fprintf(w, "\nStored %d, failed %d in %s\n", r.Stored, r.Failed, formatDuration(r.Duration()))

	if r.InStore >= 0 {
		_, _ = fmt.Fprintf(w, "Database now holds %d pokemon\n", r.InStore)
	}

	if r.Interrupted {
		_, _ = fmt.Fprintln(w, "Interrupted before the end of the range.")
	}

	if ids := r.FailedIDs(); len(ids) > 0 {
		_, _ = fmt.Fprintln(w, "Failed:")

		for _, res := range r.Results {
			if !res.OK() {
				_, _ = fmt.Fprintf(w, "  #%d (%s): %s\n", res.ID, res.Stage, truncateString(res.Err.Error(), 70))
			}
		}
	}

	if r.Interrupted || r.Failed > 0 {
		retry := "pokedex fetch --resume"
		if r.Kind == model.SyncKindSprites {
			retry = "pokedex sprites"
		}

		_, _ = fmt.Fprintf(w, "\nRun '%s' to retry the missing records.\n", retry)
	}
}

// formatDuration rounds for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}

	return d.Round(100 * time.Millisecond).String()
}

// truncateString truncates a string to maxLen display cells with ellipsis
func truncateString(s string, maxLen int) string {
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}

	return ansi.Truncate(s, maxLen, "...")
}
