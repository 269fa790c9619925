package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "pokedex"

	// EnvPrefix is the prefix for environment variable overrides (POKEDEX_SYNC_TO, ...)
	EnvPrefix = "POKEDEX"

	// Version is reported by the root command
	Version = "0.3.0"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the pokedex configuration directory path.
// Linux: ~/.config/pokedex (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\pokedex (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
