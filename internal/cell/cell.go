package cell

// ColorType selects how Color.Value is interpreted.
type ColorType uint8

const (
	// ColorDefault is the terminal's own startup colour. It is the zero value.
	ColorDefault ColorType = iota
	ColorIndexed
	ColorRGB
)

// Color represents a terminal color
type Color struct {
	Type  ColorType
	Value uint32 // Indexed: 0-255, RGB: 0xRRGGBB
}

// Default returns the terminal default color.
func Default() Color {
	return Color{}
}

// Indexed returns a palette color (0-15 are the ANSI colors).
func Indexed(n uint8) Color {
	return Color{Type: ColorIndexed, Value: uint32(n)}
}

// RGB returns a 24-bit color from 0xRRGGBB.
func RGB(v uint32) Color {
	return Color{Type: ColorRGB, Value: v & 0xffffff}
}

// IsDefault reports whether c defers to the terminal's colors.
func (c Color) IsDefault() bool {
	return c.Type == ColorDefault
}

// The sixteen ANSI palette entries.
var (
	Black         = Indexed(0)
	Red           = Indexed(1)
	Green         = Indexed(2)
	Yellow        = Indexed(3)
	Blue          = Indexed(4)
	Magenta       = Indexed(5)
	Cyan          = Indexed(6)
	White         = Indexed(7)
	BrightBlack   = Indexed(8)
	BrightRed     = Indexed(9)
	BrightGreen   = Indexed(10)
	BrightYellow  = Indexed(11)
	BrightBlue    = Indexed(12)
	BrightMagenta = Indexed(13)
	BrightCyan    = Indexed(14)
	BrightWhite   = Indexed(15)
)

// Cell is one screen position: a character and its two colors.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// Blank returns the default cell: a space in the terminal's startup colors.
func Blank() Cell {
	return Cell{Rune: ' '}
}

// New returns a cell with explicit colors.
func New(r rune, fg, bg Color) Cell {
	return Cell{Rune: r, Fg: fg, Bg: bg}
}

// Equal reports whether both cells have the same character and colors.
func (c Cell) Equal(other Cell) bool {
	return c.Rune == other.Rune && c.Fg == other.Fg && c.Bg == other.Bg
}
