package buffer

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/xanthalas/consoleui/internal/cell"
)

// Lines returns the characters of each row as plain text.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.height)
	var sb strings.Builder
	for y, row := range b.rows {
		sb.Reset()
		for _, c := range row {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		lines[y] = sb.String()
	}
	return lines
}

// String returns the plain text of the whole grid, rows separated by newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Render converts the buffer to an ANSI string, emitting SGR only when the
// colors change from the previous cell.
func (b *Buffer) Render() string {
	var sb strings.Builder
	sb.Grow(b.width * b.height * 2)

	for y, row := range b.rows {
		// Reset per line.
		sb.WriteString(ansi.ResetStyle)
		var lastFg, lastBg cell.Color
		for x, c := range row {
			if x == 0 || c.Fg != lastFg || c.Bg != lastBg {
				sb.WriteString(SGR(c.Fg, c.Bg))
				lastFg, lastBg = c.Fg, c.Bg
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		if y < b.height-1 {
			sb.WriteRune('\n')
		}
	}

	sb.WriteString(ansi.ResetStyle)
	return sb.String()
}

// SGR returns the select-graphic-rendition sequence for a color pair.
func SGR(fg, bg cell.Color) string {
	return ansi.Style{}.ForegroundColor(fg.ANSI()).BackgroundColor(bg.ANSI()).String()
}
