// Package config loads the application configuration with viper.
//
// Values are layered, lowest precedence first: built-in defaults, the YAML
// config file, POKEDEX_* environment variables, then bound command flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/inovacc/pokedex/internal/application"
	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/params"
)

// Loader layers configuration sources into a model.Config.
type Loader struct {
	viper *viper.Viper
}

// NewLoader creates a Loader with the defaults registered.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetEnvPrefix(application.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, model.DefaultConfig())

	return &Loader{viper: v}
}

// Every key must have a default for AutomaticEnv to reach it on Unmarshal.
func setDefaults(v *viper.Viper, d model.Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.rate_limit", d.API.RateLimit)
	v.SetDefault("sync.from", d.Sync.From)
	v.SetDefault("sync.to", d.Sync.To)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("widget.entries", d.Widget.Entries)
	v.SetDefault("widget.interval", d.Widget.Interval)
	v.SetDefault("widget.schedule", d.Widget.Schedule)
}

// BindFlag binds a command flag to a config key. Only flags the user set
// override lower layers.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for config key %s", key)
	}

	if err := l.viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
	}

	return nil
}

// Load reads the config file at path. An empty path looks for config.yaml in
// the application directory, and a missing default file is not an error.
func (l *Loader) Load(path string) (model.Config, error) {
	explicit := path != ""

	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return model.Config{}, err
		}

		path = p
	}

	l.viper.SetConfigFile(path)

	if err := l.viper.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return model.Config{}, fmt.Errorf("failed to read config file: %w", err)
		}

		slog.Debug("no config file, using defaults", slog.String("path", path))
	}

	var cfg model.Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return model.Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return model.Config{}, err
	}

	return cfg, nil
}

// ConfigFileUsed returns the file read by the last Load, or "" if none was found.
func (l *Loader) ConfigFileUsed() string {
	if _, err := os.Stat(l.viper.ConfigFileUsed()); err != nil {
		return ""
	}

	return l.viper.ConfigFileUsed()
}

// DefaultPath returns the config.yaml location in the application directory.
func DefaultPath() (string, error) {
	return params.DataPath(params.ConfigFile)
}

// Validate rejects values no component can work with.
func Validate(cfg *model.Config) error {
	var errs []error

	if cfg.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url must not be empty"))
	}

	if cfg.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}

	if cfg.API.RateLimit < 0 {
		errs = append(errs, errors.New("api.rate_limit must not be negative"))
	}

	if cfg.Sync.From <= 0 || cfg.Sync.To < cfg.Sync.From {
		errs = append(errs, fmt.Errorf("sync range [%d, %d) is invalid", cfg.Sync.From, cfg.Sync.To))
	} else if cfg.Sync.To-cfg.Sync.From > model.MaxSyncRange {
		errs = append(errs, fmt.Errorf("sync range [%d, %d) spans more than %d ids", cfg.Sync.From, cfg.Sync.To, model.MaxSyncRange))
	}

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", cfg.Log.Format))
	}

	if cfg.Widget.Entries <= 0 {
		errs = append(errs, errors.New("widget.entries must be positive"))
	}

	if cfg.Widget.Interval <= 0 {
		errs = append(errs, errors.New("widget.interval must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return nil
}

// ParseLevel maps a log.level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", s, err)
	}

	return level, nil
}
