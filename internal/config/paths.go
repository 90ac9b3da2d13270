package config

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the settings directory.
const HomeEnv = "CONSOLEUI_HOME"

// Paths locates the files the demo reads and writes.
type Paths struct {
	Home       string
	ConfigPath string
	LogDir     string
}

// DefaultPaths resolves the settings directory: $CONSOLEUI_HOME, else
// $XDG_CONFIG_HOME/consoleui, else ~/.consoleui.
func DefaultPaths() (*Paths, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return PathsAt(home), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return PathsAt(filepath.Join(xdg, "consoleui")), nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsAt(filepath.Join(userHome, ".consoleui")), nil
}

// PathsAt lays out config.toml and logs/ under home.
func PathsAt(home string) *Paths {
	return &Paths{
		Home:       home,
		ConfigPath: filepath.Join(home, "config.toml"),
		LogDir:     filepath.Join(home, "logs"),
	}
}
