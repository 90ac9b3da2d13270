package control

import (
	"errors"
	"fmt"

	"github.com/xanthalas/consoleui/internal/border"
	"github.com/xanthalas/consoleui/internal/buffer"
	"github.com/xanthalas/consoleui/internal/cell"
)

// ErrInvalidDimensions is returned when a control width or height is below 1.
var ErrInvalidDimensions = errors.New("control width and height must be at least 1")

// DefaultZOrder is the paint priority given to new controls. Window content
// (its backdrop and border) sits beneath at zero.
const DefaultZOrder = 1

// Visibility controls whether a control is composited.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

// Parent is the non-owning back-reference from a control to the surface that
// composites it.
type Parent interface {
	Width() int
	Height() int
}

// Control is anything a Window can composite.
type Control interface {
	// Draw copies the control's cells into target at its offset.
	Draw(target *buffer.Buffer) error
	ZOrder() int
	Visible() bool
	Parent() Parent
	SetParent(p Parent)
}

// Base holds the state shared by every control: geometry, colors, border
// and the private buffer that mutations are applied to. Concrete controls
// embed it.
type Base struct {
	width      int
	height     int
	left       int
	top        int
	zOrder     int
	visibility Visibility
	fg         cell.Color
	bg         cell.Color
	border     border.Border
	buf        *buffer.Buffer
	parent     Parent

	// afterResize lets an embedding control fix up its own state when the
	// buffer is reallocated.
	afterResize func()

	// Tag is free for callers to attach their own data.
	Tag any
}

// NewBase returns a base with a blank buffer of the given size.
func NewBase(width, height int) (Base, error) {
	buf, err := newControlBuffer(width, height)
	if err != nil {
		return Base{}, err
	}
	return Base{
		width:      width,
		height:     height,
		zOrder:     DefaultZOrder,
		visibility: Visible,
		border:     border.New(border.None),
		buf:        buf,
	}, nil
}

func newControlBuffer(width, height int) (*buffer.Buffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return buffer.New(width, height)
}

func (b *Base) Width() int  { return b.width }
func (b *Base) Height() int { return b.height }

// SetWidth resizes the control horizontally. See Resize.
func (b *Base) SetWidth(width int) error {
	return b.Resize(width, b.height)
}

// SetHeight resizes the control vertically. See Resize.
func (b *Base) SetHeight(height int) error {
	return b.Resize(b.width, height)
}

// Resize reallocates the buffer. Existing content is discarded; the new
// cells take the control's colors and the border is stamped again.
func (b *Base) Resize(width, height int) error {
	buf, err := newControlBuffer(width, height)
	if err != nil {
		return err
	}
	b.width, b.height = width, height
	b.buf = buf
	b.recolor()
	if b.afterResize != nil {
		b.afterResize()
	}
	return nil
}

func (b *Base) Left() int { return b.left }
func (b *Base) Top() int  { return b.top }

// SetPosition moves the control relative to its parent. Offsets may be
// negative; whatever falls outside the parent is clipped when drawn.
func (b *Base) SetPosition(left, top int) {
	b.left, b.top = left, top
}

func (b *Base) SetLeft(left int) { b.left = left }
func (b *Base) SetTop(top int)   { b.top = top }

func (b *Base) ZOrder() int            { return b.zOrder }
func (b *Base) SetZOrder(z int)        { b.zOrder = z }
func (b *Base) Visible() bool          { return b.visibility == Visible }
func (b *Base) Visibility() Visibility { return b.visibility }

func (b *Base) SetVisibility(v Visibility) { b.visibility = v }

func (b *Base) Parent() Parent     { return b.parent }
func (b *Base) SetParent(p Parent) { b.parent = p }

func (b *Base) Foreground() cell.Color { return b.fg }
func (b *Base) Background() cell.Color { return b.bg }

// SetForeground recolors every existing cell now, not just future writes.
func (b *Base) SetForeground(c cell.Color) {
	b.fg = c
	b.recolor()
}

// SetBackground recolors every existing cell now, not just future writes.
func (b *Base) SetBackground(c cell.Color) {
	b.bg = c
	b.recolor()
}

// recolor applies the control colors to every cell, then restamps the
// border so an explicitly colored border keeps its own colors.
func (b *Base) recolor() {
	fg, bg := b.fg, b.bg
	b.buf.Update(func(_, _ int, c *cell.Cell) {
		c.Fg = fg
		c.Bg = bg
	})
	b.applyBorder()
}

func (b *Base) Border() border.Border { return b.border }

// SetBorder installs bd and stamps it onto the edge cells immediately,
// replacing whatever characters were there.
func (b *Base) SetBorder(bd border.Border) {
	b.border = bd
	b.applyBorder()
}

func (b *Base) applyBorder() {
	border.Paint(b.buf, b.border, b.fg, b.bg)
}

// FillWithChar sets every character to r, leaving colors alone. The border
// is stamped last so a fill never overwrites it.
func (b *Base) FillWithChar(r rune) {
	b.buf.Update(func(_, _ int, c *cell.Cell) {
		c.Rune = r
	})
	b.applyBorder()
}

// Clear fills the control with spaces.
func (b *Base) Clear() {
	b.FillWithChar(' ')
}

// Cell returns the control's own cell at (x, y).
func (b *Base) Cell(x, y int) (cell.Cell, error) {
	return b.buf.Get(x, y)
}

// Draw copies every cell into target at (Left, Top). Later draws overwrite
// earlier ones. Cells outside target are skipped here, before Set is called,
// so Buffer.Set keeps rejecting any out-of-range coordinate it is given.
func (b *Base) Draw(target *buffer.Buffer) error {
	for y := 0; y < b.height; y++ {
		ty := b.top + y
		if ty < 0 || ty >= target.Height() {
			continue
		}
		for x := 0; x < b.width; x++ {
			tx := b.left + x
			if tx < 0 || tx >= target.Width() {
				continue
			}
			c, err := b.buf.Get(x, y)
			if err != nil {
				return err
			}
			if err := target.Set(tx, ty, c); err != nil {
				return err
			}
		}
	}
	return nil
}
