package params

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/inovacc/pokedex/internal/application"
)

const (
	// SQLiteFile is the default store file name.
	SQLiteFile = "pokedex.db"

	// BoltFile is the store file name used by bolt builds.
	BoltFile = "pokedex.bolt"

	// ConfigFile is the optional configuration file looked up in the app data dir.
	ConfigFile = "config.yaml"

	// WatchLockFile holds the PID of a running widget watch, next to the database.
	WatchLockFile = "widget-watch.pid"
)

var (
	once       sync.Once
	appdataDir string
	errAppdata error
)

// AppdataDir returns the per-user data directory, creating it on first use.
func AppdataDir() (string, error) {
	once.Do(getAppDataDir)

	return appdataDir, errAppdata
}

// DataPath joins name onto the app data directory.
func DataPath(name string) (string, error) {
	dir, err := AppdataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}

func getAppDataDir() {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		errAppdata = err
		return
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		errAppdata = fmt.Errorf("creating data directory: %w", err)
		return
	}

	appdataDir = dir
}
