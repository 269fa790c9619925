package model

import "time"

// APIConfig configures the remote fetch client.
type APIConfig struct {
	// BaseURL is the collection endpoint; IDs are appended as a path segment
	BaseURL string `mapstructure:"base_url" json:"base_url"`

	// Timeout bounds a single request
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`

	// RateLimit is the maximum requests per second, 0 disables pacing
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit"`
}

// MaxSyncRange bounds how many IDs one sync range may span.
const MaxSyncRange = 100_000

// SyncConfig is the default half-open ID range swept by fetch.
type SyncConfig struct {
	From int `mapstructure:"from" json:"from"`
	To   int `mapstructure:"to" json:"to"`
}

// StoreConfig locates the local database.
type StoreConfig struct {
	// Path is the database file; empty means the app data directory
	Path string `mapstructure:"path" json:"path"`
}

// LogConfig configures the slog handler installed by the root command.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// WidgetConfig configures the widget timeline.
type WidgetConfig struct {
	Entries  int           `mapstructure:"entries" json:"entries"`
	Interval time.Duration `mapstructure:"interval" json:"interval"`
	Schedule string        `mapstructure:"schedule" json:"schedule"`
}

// Config holds the application configuration
type Config struct {
	API    APIConfig    `mapstructure:"api" json:"api"`
	Sync   SyncConfig   `mapstructure:"sync" json:"sync"`
	Store  StoreConfig  `mapstructure:"store" json:"store"`
	Log    LogConfig    `mapstructure:"log" json:"log"`
	Widget WidgetConfig `mapstructure:"widget" json:"widget"`
}

// Expected returns how many records a complete sweep of the configured range stores.
func (c *Config) Expected() int {
	if c.Sync.To <= c.Sync.From {
		return 0
	}

	return c.Sync.To - c.Sync.From
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://pokeapi.co/api/v2/pokemon",
			Timeout: 30 * time.Second,
		},
		// The original 151
		Sync: SyncConfig{
			From: 1,
			To:   152,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Widget: WidgetConfig{
			Entries:  5,
			Interval: time.Hour,
			Schedule: "@hourly",
		},
	}
}
