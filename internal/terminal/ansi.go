package terminal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"

	"github.com/xanthalas/consoleui/internal/buffer"
	"github.com/xanthalas/consoleui/internal/cell"
	"github.com/xanthalas/consoleui/internal/logging"
)

// ANSI is a Device that writes VT escape sequences to an io.Writer.
// Autowrap is switched off for its lifetime so writing the bottom-right cell
// does not scroll the screen.
type ANSI struct {
	out io.Writer
	w   *bufio.Writer

	width  int
	height int

	altScreen bool
	started   bool
	closed    bool

	cursorX     int
	cursorY     int
	cursorValid bool

	fg, bg     cell.Color
	colorValid bool
}

// ANSIOption configures an ANSI device.
type ANSIOption func(*ANSI)

// WithSize fixes the reported dimensions instead of querying the output.
func WithSize(width, height int) ANSIOption {
	return func(a *ANSI) {
		a.width = width
		a.height = height
	}
}

// WithAltScreen renders on the alternate screen, restoring the original
// contents on Close.
func WithAltScreen() ANSIOption {
	return func(a *ANSI) {
		a.altScreen = true
	}
}

// NewANSI returns a device writing to out. Nothing is written until the
// first operation.
func NewANSI(out io.Writer, opts ...ANSIOption) *ANSI {
	a := &ANSI{
		out: out,
		w:   bufio.NewWriterSize(out, 64*1024),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type fdWriter interface {
	Fd() uintptr
}

// Dimensions reports the size set by WithSize, else the size of the
// underlying terminal, else DefaultWidth x DefaultHeight.
func (a *ANSI) Dimensions() (int, int, error) {
	if a.closed {
		return 0, 0, ErrClosed
	}
	if a.width > 0 && a.height > 0 {
		return a.width, a.height, nil
	}
	if f, ok := a.out.(fdWriter); ok && term.IsTerminal(f.Fd()) {
		w, h, err := term.GetSize(f.Fd())
		if err != nil {
			return 0, 0, fmt.Errorf("query terminal size: %w", err)
		}
		return w, h, nil
	}
	logging.Debug("terminal: output is not a tty, using %dx%d", DefaultWidth, DefaultHeight)
	return DefaultWidth, DefaultHeight, nil
}

// start emits the one-time setup sequences ahead of the first real output.
func (a *ANSI) start() error {
	if a.closed {
		return ErrClosed
	}
	if a.started {
		return nil
	}
	a.started = true
	logging.Info("terminal: ansi device started (alt screen %t)", a.altScreen)
	if a.altScreen {
		a.w.WriteString(ansi.SetModeAltScreenSaveCursor)
	}
	a.w.WriteString(ansi.ResetModeAutoWrap)
	return nil
}

func (a *ANSI) SetCursorVisible(visible bool) error {
	if err := a.start(); err != nil {
		return err
	}
	if visible {
		a.w.WriteString(ansi.ShowCursor)
	} else {
		a.w.WriteString(ansi.HideCursor)
	}
	return nil
}

// SetCursorPosition moves the cursor, skipping the sequence when the cursor
// is already there.
func (a *ANSI) SetCursorPosition(x, y int) error {
	if err := a.start(); err != nil {
		return err
	}
	if x < 0 || y < 0 {
		return fmt.Errorf("cursor position %d,%d is negative", x, y)
	}
	if a.cursorValid && a.cursorX == x && a.cursorY == y {
		return nil
	}
	a.w.WriteString(ansi.CursorPosition(x+1, y+1))
	a.cursorX, a.cursorY = x, y
	a.cursorValid = true
	return nil
}

// SetColors selects the pair for following writes, skipping the sequence
// when it is already in effect.
func (a *ANSI) SetColors(fg, bg cell.Color) error {
	if err := a.start(); err != nil {
		return err
	}
	if a.colorValid && a.fg == fg && a.bg == bg {
		return nil
	}
	a.w.WriteString(buffer.SGR(fg, bg))
	a.fg, a.bg = fg, bg
	a.colorValid = true
	return nil
}

// WriteChar writes r at the cursor and advances it one column. Runes that do
// not occupy exactly one column are written as '?'.
func (a *ANSI) WriteChar(r rune) error {
	if err := a.start(); err != nil {
		return err
	}
	if r == 0 {
		r = ' '
	}
	if r < 0x20 || runewidth.RuneWidth(r) != 1 {
		r = '?'
	}
	if r < 0x80 {
		a.w.WriteByte(byte(r))
	} else {
		a.w.WriteRune(r)
	}
	// With autowrap off the cursor sticks at the last column; the tracked
	// column then never matches a valid target and the next move is emitted.
	a.cursorX++
	return nil
}

// ClearScreen erases the display using the current colors and homes the
// cursor.
func (a *ANSI) ClearScreen() error {
	if err := a.start(); err != nil {
		return err
	}
	a.w.WriteString(ansi.EraseEntireScreen)
	a.w.WriteString(ansi.CursorHomePosition)
	a.cursorX, a.cursorY = 0, 0
	a.cursorValid = true
	return nil
}

func (a *ANSI) Colors() (cell.Color, cell.Color) {
	return a.fg, a.bg
}

func (a *ANSI) Flush() error {
	if a.closed {
		return ErrClosed
	}
	return a.w.Flush()
}

// Close resets the style, restores autowrap and the cursor, leaves the
// alternate screen and flushes. The underlying writer is not closed.
func (a *ANSI) Close() error {
	if a.closed {
		return nil
	}
	if a.started {
		a.w.WriteString(ansi.ResetStyle)
		a.w.WriteString(ansi.SetModeAutoWrap)
		a.w.WriteString(ansi.ShowCursor)
		if a.altScreen {
			a.w.WriteString(ansi.ResetModeAltScreenSaveCursor)
		}
	}
	err := a.w.Flush()
	a.closed = true
	logging.Info("terminal: ansi device closed")
	return err
}
