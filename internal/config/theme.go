package config

import (
	"errors"
	"fmt"

	"github.com/xanthalas/consoleui/internal/border"
	"github.com/xanthalas/consoleui/internal/cell"
)

// ErrInvalidTheme is returned by Resolve for an unparseable theme entry.
var ErrInvalidTheme = errors.New("invalid theme")

// Theme is the [theme] table. Background colors the full-window panel;
// PanelBg and Accent color the two smaller ones. Colors accept names (red,
// bright-blue), palette indexes (0-255), #rgb/#rrggbb or "default".
type Theme struct {
	WindowBorder string `toml:"window_border"`
	BorderFg     string `toml:"border_fg"`
	BorderBg     string `toml:"border_bg"`
	Background   string `toml:"background"`
	Accent       string `toml:"accent"`
	PanelBg      string `toml:"panel_bg"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		WindowBorder: "single",
		Background:   "gray",
		Accent:       "red",
		PanelBg:      "blue",
	}
}

// Palette is a Theme with every entry parsed.
type Palette struct {
	WindowBorder border.Border
	Background   cell.Color
	Accent       cell.Color
	PanelBg      cell.Color
}

type colorField struct {
	key string
	raw string
	dst *cell.Color
}

// Resolve parses the theme. The window border takes explicit colors when
// either border color is set, otherwise it inherits the window colors.
func (t Theme) Resolve() (Palette, error) {
	var p Palette

	kind, ok := border.ParseKind(t.WindowBorder)
	if !ok {
		return p, fmt.Errorf("%w: window_border %q", ErrInvalidTheme, t.WindowBorder)
	}

	var borderFg, borderBg cell.Color
	fields := []colorField{
		{"border_fg", t.BorderFg, &borderFg},
		{"border_bg", t.BorderBg, &borderBg},
		{"background", t.Background, &p.Background},
		{"accent", t.Accent, &p.Accent},
		{"panel_bg", t.PanelBg, &p.PanelBg},
	}
	for _, c := range fields {
		parsed, err := cell.ParseColor(c.raw)
		if err != nil {
			return p, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, c.key, err)
		}
		*c.dst = parsed
	}

	if t.BorderFg != "" || t.BorderBg != "" {
		p.WindowBorder = border.NewColored(kind, borderFg, borderBg)
	} else {
		p.WindowBorder = border.New(kind)
	}
	return p, nil
}
