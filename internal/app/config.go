package app

import (
	"errors"
	"os"
	"time"
)

// DefaultMaxAge is the age after which prune considers a directory abandoned.
const DefaultMaxAge = 24 * time.Hour

// Config captures runtime parameters for a single CLI invocation.
type Config struct {
	Name      string
	TempBase  string
	Inventory bool
	Keep      bool
	MaxAge    time.Duration
	DryRun    bool
	Debug     bool
	Version   string
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// NewConfig creates a Config with defaults and applies provided options.
func NewConfig(opts ...ConfigOption) (Config, error) {
	cfg := Config{
		TempBase: os.TempDir(),
		MaxAge:   DefaultMaxAge,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.MaxAge < 0 {
		return Config{}, errors.New("max age must not be negative")
	}

	return cfg, nil
}

// WithName sets the name hint used to derive the directory name.
func WithName(name string) ConfigOption {
	return func(cfg *Config) {
		cfg.Name = name
	}
}

// WithTempBase overrides the base directory for temporary directories.
func WithTempBase(path string) ConfigOption {
	return func(cfg *Config) {
		if path != "" {
			cfg.TempBase = path
		}
	}
}

// WithInventory toggles printing of the workspace inventory before removal.
func WithInventory(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.Inventory = enabled
	}
}

// WithKeep leaves the directory on disk after the command finishes.
func WithKeep(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.Keep = enabled
	}
}

// WithMaxAge sets the minimum age of directories removed by prune.
func WithMaxAge(age time.Duration) ConfigOption {
	return func(cfg *Config) {
		cfg.MaxAge = age
	}
}

// WithDryRun makes prune report directories without removing them.
func WithDryRun(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.DryRun = enabled
	}
}

// WithDebug toggles verbose logging.
func WithDebug(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.Debug = enabled
	}
}

// WithVersion sets the application version used in log output.
func WithVersion(version string) ConfigOption {
	return func(cfg *Config) {
		cfg.Version = version
	}
}
