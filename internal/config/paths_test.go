package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPathsPrecedence(t *testing.T) {
	userHome := t.TempDir()
	xdg := t.TempDir()
	override := t.TempDir()
	t.Setenv("HOME", userHome)

	tests := []struct {
		name     string
		homeEnv  string
		xdgEnv   string
		wantHome string
	}{
		{"user home", "", "", filepath.Join(userHome, ".consoleui")},
		{"xdg", "", xdg, filepath.Join(xdg, "consoleui")},
		{"override wins", override, xdg, override},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(HomeEnv, tt.homeEnv)
			t.Setenv("XDG_CONFIG_HOME", tt.xdgEnv)
			paths, err := DefaultPaths()
			if err != nil {
				t.Fatalf("DefaultPaths() error = %v", err)
			}
			if paths.Home != tt.wantHome {
				t.Fatalf("home = %s, want %s", paths.Home, tt.wantHome)
			}
		})
	}
}

func TestPathsAtLayout(t *testing.T) {
	p := PathsAt("/srv/consoleui")
	if p.ConfigPath != filepath.Join("/srv/consoleui", "config.toml") || p.LogDir != filepath.Join("/srv/consoleui", "logs") {
		t.Fatalf("unexpected layout %+v", p)
	}
}
