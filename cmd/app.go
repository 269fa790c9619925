package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inovacc/pokedex/internal/common"
	"github.com/inovacc/pokedex/internal/config"
	"github.com/inovacc/pokedex/internal/core"
	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/store"
)

// appState is what every command shares once setup has run. The store is
// opened on first use so commands that never touch it do not create it.
type appState struct {
	cfg        model.Config
	logger     *slog.Logger
	configFile string
	store      store.Store
}

var app = &appState{}

// flagKeys maps config keys to the command flags that override them.
var flagKeys = map[string]string{
	"log.level":       "log-level",
	"log.format":      "log-format",
	"store.path":      "db",
	"sync.from":       "from",
	"sync.to":         "to",
	"widget.entries":  "entries",
	"widget.interval": "interval",
	"widget.schedule": "schedule",
}

func setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()

	for key, name := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}

		if err := loader.BindFlag(key, flag); err != nil {
			return err
		}
	}

	cfg, err := loader.Load(cfgFile)
	if err != nil {
		return err
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	app.close()
	app.cfg = cfg
	app.logger = logger
	app.configFile = loader.ConfigFileUsed()

	logger.Debug("configuration loaded",
		slog.String("file", app.configFile),
		slog.String("api", common.RedactURL(cfg.API.BaseURL)),
	)

	return nil
}

func newLogger(cfg model.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// openStore returns the shared store handle, opening it on first use.
func (a *appState) openStore() (store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	s, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a.store = s

	return s, nil
}

func (a *appState) catalog() (*core.Catalog, error) {
	s, err := a.openStore()
	if err != nil {
		return nil, err
	}

	return core.NewCatalog(s, a.cfg.Sync), nil
}

func (a *appState) close() {
	if a.store == nil {
		return
	}

	if err := a.store.Close(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}

	a.store = nil
}
