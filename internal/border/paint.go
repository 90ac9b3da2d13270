package border

import (
	"github.com/xanthalas/consoleui/internal/buffer"
	"github.com/xanthalas/consoleui/internal/cell"
)

// Paint stamps b onto the edge cells of buf, replacing their characters and
// colors. ownerFg/ownerBg are used when b inherits its colors.
//
// Paint order is fixed: top-left, top edge, top-right, bottom-left, bottom
// edge, bottom-right, then the left and right sides. On a 1-wide or 1-high
// buffer several corners share a cell and the later write wins, so a 1x1
// buffer ends up holding the bottom-right glyph.
func Paint(buf *buffer.Buffer, b Border, ownerFg, ownerBg cell.Color) {
	if !b.Visible() {
		return
	}
	fg, bg := b.Colors(ownerFg, ownerBg)
	w, h := buf.Width(), buf.Height()

	// Coordinates are derived from the buffer's own size, so Set cannot fail.
	put := func(x, y int, r rune) {
		_ = buf.Set(x, y, cell.New(r, fg, bg))
	}

	// Top
	put(0, 0, b.TopLeft)
	for x := 1; x < w-1; x++ {
		put(x, 0, b.Horizontal)
	}
	put(w-1, 0, b.TopRight)

	// Bottom
	put(0, h-1, b.BottomLeft)
	for x := 1; x < w-1; x++ {
		put(x, h-1, b.Horizontal)
	}
	put(w-1, h-1, b.BottomRight)

	// Sides
	for y := 1; y < h-1; y++ {
		put(0, y, b.Vertical)
		put(w-1, y, b.Vertical)
	}
}
