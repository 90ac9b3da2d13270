package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/xanthalas/consoleui/internal/logging"
)

// Config holds the demo and runtime settings read from config.toml.
type Config struct {
	Paths *Paths `toml:"-"`

	// Device names the terminal device: ansi, tcell or headless.
	Device string `toml:"device"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// LogDir overrides Paths.LogDir when set.
	LogDir string `toml:"log_dir"`
	// StepDelayMs is the pause between demo steps.
	StepDelayMs int `toml:"step_delay_ms"`
	// Profile turns on render timing summaries in the log.
	Profile bool `toml:"profile"`

	Theme Theme `toml:"theme"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return &Config{
		Paths:       paths,
		Device:      "ansi",
		LogLevel:    "info",
		StepDelayMs: 750,
		Theme:       DefaultTheme(),
	}, nil
}

// Load reads the config file at the default location, returning defaults
// when it does not exist.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFile(paths.ConfigPath)
}

// LoadFile reads path over the defaults. A missing file is not an error;
// keys the file sets replace the defaults and the rest are kept.
func LoadFile(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		logging.Warn("config: ignoring unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ResolvedLogDir is the directory log files go to.
func (c *Config) ResolvedLogDir() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	if c.Paths != nil {
		return c.Paths.LogDir
	}
	return ""
}
