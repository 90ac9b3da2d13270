package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xanthalas/consoleui/internal/cell"
)

// Kind selects a glyph set.
type Kind int

const (
	None Kind = iota
	Simple
	Single
	Double
	Rounded
	Thick
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Simple:
		return "simple"
	case Single:
		return "single"
	case Double:
		return "double"
	case Rounded:
		return "rounded"
	case Thick:
		return "thick"
	default:
		return "unknown"
	}
}

// ParseKind maps a config name to a Kind. Unknown names report false.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, true
	case "simple", "ascii":
		return Simple, true
	case "single", "normal":
		return Single, true
	case "double":
		return Double, true
	case "rounded":
		return Rounded, true
	case "thick":
		return Thick, true
	default:
		return None, false
	}
}

// Border describes the glyphs and colors stamped onto the edge cells of a
// control or window. It is a value; installing it copies it.
type Border struct {
	Kind        Kind
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	Fg          cell.Color
	Bg          cell.Color
	// InheritColors paints with the owner's colors instead of Fg/Bg.
	InheritColors bool
}

// New returns a border that takes its colors from its owner.
func New(kind Kind) Border {
	b := Border{Kind: kind, InheritColors: true}
	b.setGlyphs(glyphsFor(kind))
	return b
}

// NewColored returns a border painted in fg/bg regardless of its owner.
func NewColored(kind Kind, fg, bg cell.Color) Border {
	b := New(kind)
	b.Fg = fg
	b.Bg = bg
	b.InheritColors = false
	return b
}

// Visible reports whether the border paints anything.
func (b Border) Visible() bool {
	return b.Kind != None
}

// Colors resolves the paint colors given the owner's current colors.
func (b Border) Colors(ownerFg, ownerBg cell.Color) (cell.Color, cell.Color) {
	if b.InheritColors {
		return ownerFg, ownerBg
	}
	return b.Fg, b.Bg
}

func (b *Border) setGlyphs(lb lipgloss.Border) {
	b.TopLeft = firstRune(lb.TopLeft)
	b.TopRight = firstRune(lb.TopRight)
	b.BottomLeft = firstRune(lb.BottomLeft)
	b.BottomRight = firstRune(lb.BottomRight)
	b.Horizontal = firstRune(lb.Top)
	b.Vertical = firstRune(lb.Left)
}

func glyphsFor(kind Kind) lipgloss.Border {
	switch kind {
	case Single:
		return lipgloss.NormalBorder()
	case Double:
		return lipgloss.DoubleBorder()
	case Rounded:
		return lipgloss.RoundedBorder()
	case Thick:
		return lipgloss.ThickBorder()
	default:
		return lipgloss.ASCIIBorder()
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
