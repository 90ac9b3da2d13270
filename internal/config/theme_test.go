package config

import (
	"errors"
	"testing"

	"github.com/xanthalas/consoleui/internal/border"
	"github.com/xanthalas/consoleui/internal/cell"
)

func TestResolveDefaultTheme(t *testing.T) {
	p, err := DefaultTheme().Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.WindowBorder.Kind != border.Single {
		t.Fatalf("window border = %v", p.WindowBorder.Kind)
	}
	if !p.WindowBorder.InheritColors {
		t.Fatalf("default window border should inherit window colors")
	}
	if p.Background != cell.BrightBlack || p.Accent != cell.Red || p.PanelBg != cell.Blue {
		t.Fatalf("unexpected palette %+v", p)
	}
}

func TestResolveColoredBorder(t *testing.T) {
	p, err := Theme{WindowBorder: "thick", BorderFg: "bright-cyan"}.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.WindowBorder.InheritColors {
		t.Fatalf("border with border_fg should carry its own colors")
	}
	if p.WindowBorder.Fg != cell.BrightCyan || !p.WindowBorder.Bg.IsDefault() {
		t.Fatalf("border colors = %v/%v", p.WindowBorder.Fg, p.WindowBorder.Bg)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []Theme{
		{WindowBorder: "zigzag"},
		{WindowBorder: "single", Accent: "not-a-color"},
		{WindowBorder: "single", BorderBg: "#12"},
		{WindowBorder: "single", PanelBg: "300"},
	}
	for _, th := range tests {
		if _, err := th.Resolve(); !errors.Is(err, ErrInvalidTheme) {
			t.Fatalf("Resolve(%+v) expected ErrInvalidTheme, got %v", th, err)
		}
	}
}
