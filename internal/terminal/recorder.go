package terminal

import (
	"fmt"

	"github.com/xanthalas/consoleui/internal/buffer"
	"github.com/xanthalas/consoleui/internal/cell"
)

// Write is one character written to a Recorder.
type Write struct {
	X, Y int
	Cell cell.Cell
}

// Recorder is an in-memory Device. It keeps the resulting screen as a buffer
// and logs every character written, which makes it suitable for tests and
// headless rendering.
type Recorder struct {
	screen *buffer.Buffer
	width  int
	height int

	x, y          int
	fg, bg        cell.Color
	cursorVisible bool

	writes  []Write
	flushes int
	closed  bool

	// FailAfter makes WriteChar fail once this many characters have been
	// written. Zero disables it.
	FailAfter int
}

// NewRecorder returns a recorder with a blank screen of the given size. Sizes
// below 1 are reported as-is by Dimensions so callers can exercise their
// validation.
func NewRecorder(width, height int) *Recorder {
	r := &Recorder{cursorVisible: true}
	if width > 0 && height > 0 {
		r.screen, _ = buffer.New(width, height)
	} else {
		r.screen = &buffer.Buffer{}
	}
	r.width, r.height = width, height
	return r
}

func (r *Recorder) Dimensions() (int, int, error) {
	if r.closed {
		return 0, 0, ErrClosed
	}
	return r.width, r.height, nil
}

func (r *Recorder) SetCursorVisible(visible bool) error {
	if r.closed {
		return ErrClosed
	}
	r.cursorVisible = visible
	return nil
}

func (r *Recorder) SetCursorPosition(x, y int) error {
	if r.closed {
		return ErrClosed
	}
	r.x, r.y = x, y
	return nil
}

func (r *Recorder) SetColors(fg, bg cell.Color) error {
	if r.closed {
		return ErrClosed
	}
	r.fg, r.bg = fg, bg
	return nil
}

func (r *Recorder) WriteChar(ch rune) error {
	if r.closed {
		return ErrClosed
	}
	if r.FailAfter > 0 && len(r.writes) >= r.FailAfter {
		return fmt.Errorf("recorder: write %d refused", len(r.writes)+1)
	}
	c := cell.New(ch, r.fg, r.bg)
	if err := r.screen.Set(r.x, r.y, c); err != nil {
		return err
	}
	r.writes = append(r.writes, Write{X: r.x, Y: r.y, Cell: c})
	r.x++
	return nil
}

// ClearScreen blanks the screen in the current colors.
func (r *Recorder) ClearScreen() error {
	if r.closed {
		return ErrClosed
	}
	blank := cell.New(' ', r.fg, r.bg)
	r.screen.Fill(blank)
	r.x, r.y = 0, 0
	return nil
}

func (r *Recorder) Colors() (cell.Color, cell.Color) {
	return r.fg, r.bg
}

func (r *Recorder) Flush() error {
	if r.closed {
		return ErrClosed
	}
	r.flushes++
	return nil
}

func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Screen returns a copy of what has been drawn so far.
func (r *Recorder) Screen() *buffer.Buffer {
	return buffer.Clone(r.screen)
}

// Writes returns the characters written since the last Reset.
func (r *Recorder) Writes() []Write {
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// Reset forgets the write log and flush count, keeping the screen.
func (r *Recorder) Reset() {
	r.writes = r.writes[:0]
	r.flushes = 0
}

func (r *Recorder) Flushes() int { return r.flushes }

func (r *Recorder) CursorVisible() bool { return r.cursorVisible }

func (r *Recorder) Closed() bool { return r.closed }
