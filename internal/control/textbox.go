package control

import (
	"errors"
	"fmt"

	"github.com/xanthalas/consoleui/internal/border"
)

var (
	// ErrCursorOutOfRange is returned when a cursor target is outside the
	// writable area or on the border.
	ErrCursorOutOfRange = errors.New("cursor outside writable area")
	// ErrWriteOutOfBounds is returned by Write when text overflows and the
	// textbox is set to report overflow.
	ErrWriteOutOfBounds = errors.New("write outside textbox")
)

// Textbox is a control with a text cursor confined to its interior.
type Textbox struct {
	Base

	cursorX int
	cursorY int

	// WordWrap continues writing on the next row when a row fills up. When
	// false the rest of the text is dropped instead. Wrapping is per
	// character, not at word boundaries.
	WordWrap bool

	// ErrorOnOverflow makes Write return ErrWriteOutOfBounds when it runs
	// out of room instead of stopping silently.
	ErrorOnOverflow bool
}

var _ Control = (*Textbox)(nil)

// NewTextbox creates a borderless textbox with word wrap on.
func NewTextbox(width, height int) (*Textbox, error) {
	base, err := NewBase(width, height)
	if err != nil {
		return nil, err
	}
	t := &Textbox{Base: base, WordWrap: true}
	t.afterResize = t.homeCursor
	return t, nil
}

// writable returns the inclusive bounds of the area text may occupy.
func (t *Textbox) writable() (minX, minY, maxX, maxY int) {
	if t.border.Visible() {
		return 1, 1, t.width - 2, t.height - 2
	}
	return 0, 0, t.width - 1, t.height - 1
}

// Cursor returns the position the next character will be written to.
func (t *Textbox) Cursor() (x, y int) {
	return t.cursorX, t.cursorY
}

// SetCursorLeft moves the cursor column.
func (t *Textbox) SetCursorLeft(x int) error {
	minX, _, maxX, _ := t.writable()
	if x < minX || x > maxX {
		return fmt.Errorf("%w: column %d not in [%d,%d]", ErrCursorOutOfRange, x, minX, maxX)
	}
	t.cursorX = x
	return nil
}

// SetCursorTop moves the cursor row. Rows are checked against the height.
func (t *Textbox) SetCursorTop(y int) error {
	_, minY, _, maxY := t.writable()
	if y < minY || y > maxY {
		return fmt.Errorf("%w: row %d not in [%d,%d]", ErrCursorOutOfRange, y, minY, maxY)
	}
	t.cursorY = y
	return nil
}

// SetCursor moves the cursor, validating both coordinates before changing
// either.
func (t *Textbox) SetCursor(x, y int) error {
	minX, minY, maxX, maxY := t.writable()
	if x < minX || x > maxX || y < minY || y > maxY {
		return fmt.Errorf("%w: (%d,%d) not in [%d,%d]x[%d,%d]", ErrCursorOutOfRange, x, y, minX, maxX, minY, maxY)
	}
	t.cursorX, t.cursorY = x, y
	return nil
}

// SetBorder installs bd and nudges the cursor off the new border. A cursor
// on the bottom border row stays there; later writes have no room.
// Removing the border from a box one cell wide or high can leave the
// inward-nudged cursor outside the cells, so it goes back to (0,0).
func (t *Textbox) SetBorder(bd border.Border) {
	t.Base.SetBorder(bd)
	if !bd.Visible() {
		if t.cursorX >= t.width || t.cursorY >= t.height {
			t.cursorX, t.cursorY = 0, 0
		}
		return
	}
	if t.cursorX == 0 {
		t.cursorX = 1
	} else if t.cursorX == t.width-1 {
		t.cursorX = 1
		t.cursorY++
	}
	if t.cursorY == 0 {
		t.cursorY = 1
	}
}

// Clear blanks the textbox and moves the cursor to the first writable cell.
func (t *Textbox) Clear() {
	t.Base.Clear()
	t.homeCursor()
}

func (t *Textbox) homeCursor() {
	minX, minY, _, _ := t.writable()
	t.cursorX, t.cursorY = minX, minY
}

// Write places text at the cursor, one rune per cell, advancing the cursor
// as it goes. Colors of the written cells are left as they are.
//
// When the cursor passes the last writable column it moves to the start of
// the next row; with WordWrap off the remaining text is then dropped. Once
// the cursor is outside the writable area the write stops, returning
// ErrWriteOutOfBounds if ErrorOnOverflow is set. The cursor keeps its last
// position, which may be past the final row.
func (t *Textbox) Write(text string) error {
	minX, _, maxX, maxY := t.writable()
	for _, r := range text {
		if t.cursorX > maxX || t.cursorY > maxY {
			if t.ErrorOnOverflow {
				return fmt.Errorf("%w: writing %q at %d,%d", ErrWriteOutOfBounds, text, t.cursorX, t.cursorY)
			}
			return nil
		}

		c, err := t.buf.Get(t.cursorX, t.cursorY)
		if err != nil {
			return err
		}
		c.Rune = r
		if err := t.buf.Set(t.cursorX, t.cursorY, c); err != nil {
			return err
		}

		t.cursorX++
		if t.cursorX > maxX {
			t.cursorY++
			t.cursorX = minX
			if !t.WordWrap {
				break
			}
		}
	}
	return nil
}

// Writef formats according to a format specifier and writes the result.
func (t *Textbox) Writef(format string, args ...any) error {
	return t.Write(fmt.Sprintf(format, args...))
}
