package cell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned by ParseColor for unrecognised input.
var ErrInvalidColor = errors.New("invalid color")

var namedColors = map[string]Color{
	"black":          Black,
	"red":            Red,
	"green":          Green,
	"yellow":         Yellow,
	"blue":           Blue,
	"magenta":        Magenta,
	"cyan":           Cyan,
	"white":          White,
	"gray":           BrightBlack,
	"grey":           BrightBlack,
	"bright-black":   BrightBlack,
	"bright-red":     BrightRed,
	"bright-green":   BrightGreen,
	"bright-yellow":  BrightYellow,
	"bright-blue":    BrightBlue,
	"bright-magenta": BrightMagenta,
	"bright-cyan":    BrightCyan,
	"bright-white":   BrightWhite,
}

// ParseColor converts a config-style color string into a Color.
// Accepted forms: "" or "default", a palette index "0".."255",
// an ANSI name such as "blue" or "bright-red", and "#rgb" / "#rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return Default(), nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		parsed, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b := parsed.RGB255()
		return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Indexed(uint8(n)), nil
}

// MustParseColor is ParseColor for package-level literals; it panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ANSI converts c to an x/ansi color. Default maps to nil, which x/ansi
// renders as the terminal's default foreground/background.
func (c Color) ANSI() ansi.Color {
	switch c.Type {
	case ColorIndexed:
		if c.Value < 16 {
			return ansi.BasicColor(c.Value)
		}
		return ansi.IndexedColor(c.Value)
	case ColorRGB:
		return ansi.RGBColor{
			R: uint8(c.Value >> 16),
			G: uint8(c.Value >> 8),
			B: uint8(c.Value),
		}
	default:
		return nil
	}
}

// String renders c in the form ParseColor accepts.
func (c Color) String() string {
	switch c.Type {
	case ColorIndexed:
		return strconv.Itoa(int(c.Value))
	case ColorRGB:
		return fmt.Sprintf("#%06x", c.Value)
	default:
		return "default"
	}
}
