// Package window composites controls onto a terminal device, sending only
// the cells that changed since the previous pass.
package window

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xanthalas/consoleui/internal/border"
	"github.com/xanthalas/consoleui/internal/buffer"
	"github.com/xanthalas/consoleui/internal/cell"
	"github.com/xanthalas/consoleui/internal/control"
	"github.com/xanthalas/consoleui/internal/logging"
	"github.com/xanthalas/consoleui/internal/perf"
	"github.com/xanthalas/consoleui/internal/terminal"
)

var (
	// ErrInvalidDimensions is returned when the device reports a size below 1x1.
	ErrInvalidDimensions = errors.New("terminal dimensions must be at least 1x1")
	// ErrNilControl is returned when adding a nil control.
	ErrNilControl = errors.New("nil control")
	// ErrDuplicateControl is returned when a control is added twice or already
	// belongs to another parent.
	ErrDuplicateControl = errors.New("control already added to window")
)

// Window is the top-level surface. It owns its controls and two buffers:
// working, which is rebuilt on every pass, and lastRendered, which mirrors
// what the device currently shows.
//
// A Window is not safe for concurrent use.
type Window struct {
	dev    terminal.Device
	width  int
	height int

	border border.Border
	fg, bg cell.Color

	savedFg, savedBg cell.Color

	controls     []control.Control
	working      *buffer.Buffer
	lastRendered *buffer.Buffer

	lastWritten int
	closed      bool
}

// Option configures a Window at construction.
type Option func(*Window)

// WithBorder draws b around the edge of the screen, beneath every control.
func WithBorder(b border.Border) Option {
	return func(w *Window) {
		w.border = b
	}
}

// WithBackground sets the backdrop color shown wherever no control draws.
func WithBackground(bg cell.Color) Option {
	return func(w *Window) {
		w.bg = bg
	}
}

// WithForeground sets the foreground of the backdrop and an inheriting
// window border.
func WithForeground(fg cell.Color) Option {
	return func(w *Window) {
		w.fg = fg
	}
}

// New takes over dev: it records the colors in effect, hides the cursor and
// clears the screen. The window covers the whole device.
func New(dev terminal.Device, opts ...Option) (*Window, error) {
	width, height, err := dev.Dimensions()
	if err != nil {
		return nil, fmt.Errorf("query dimensions: %w", err)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	w := &Window{
		dev:    dev,
		width:  width,
		height: height,
		border: border.New(border.None),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.savedFg, w.savedBg = dev.Colors()

	if err := dev.SetCursorVisible(false); err != nil {
		return nil, fmt.Errorf("hide cursor: %w", err)
	}
	if err := dev.SetColors(w.fg, w.bg); err != nil {
		return nil, w.abandon("set colors", err)
	}
	if err := dev.ClearScreen(); err != nil {
		return nil, w.abandon("clear screen", err)
	}
	if err := dev.Flush(); err != nil {
		return nil, w.abandon("flush", err)
	}

	// Dimensions were validated above.
	w.lastRendered, _ = buffer.New(width, height)
	w.lastRendered.Fill(w.blank())
	w.working, _ = buffer.New(width, height)
	w.resetBackdrop()

	logging.Debug("window: %dx%d border=%s", width, height, w.border.Kind)
	return w, nil
}

// abandon puts the cursor and colors back after New fails part way. Errors
// from the device at this point are logged, not returned.
func (w *Window) abandon(op string, err error) error {
	if rerr := errors.Join(
		w.dev.SetColors(w.savedFg, w.savedBg),
		w.dev.SetCursorVisible(true),
		w.dev.Flush(),
	); rerr != nil {
		logging.Warn("window: restore after failed %s: %v", op, rerr)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (w *Window) Width() int  { return w.width }
func (w *Window) Height() int { return w.height }

// Border returns the window border.
func (w *Window) Border() border.Border { return w.border }

// SetBorder replaces the window border from the next UpdateScreen on.
func (w *Window) SetBorder(b border.Border) { w.border = b }

// Controls returns the children in the order they were added.
func (w *Window) Controls() []control.Control {
	out := make([]control.Control, len(w.controls))
	copy(out, w.controls)
	return out
}

// AddControl makes c a child of the window. A control can be added once and
// only to a single window.
func (w *Window) AddControl(c control.Control) error {
	if c == nil {
		return ErrNilControl
	}
	if p := c.Parent(); p != nil && p != control.Parent(w) {
		return ErrDuplicateControl
	}
	for _, existing := range w.controls {
		if existing == c {
			return ErrDuplicateControl
		}
	}
	w.controls = append(w.controls, c)
	c.SetParent(w)
	return nil
}

// RemoveControl detaches c, reporting whether it was a child. Its cells
// disappear on the next UpdateScreen.
func (w *Window) RemoveControl(c control.Control) bool {
	for i, existing := range w.controls {
		if existing == c {
			w.controls = append(w.controls[:i], w.controls[i+1:]...)
			c.SetParent(nil)
			return true
		}
	}
	return false
}

func (w *Window) blank() cell.Cell {
	return cell.New(' ', w.fg, w.bg)
}

// resetBackdrop returns the working buffer to what is shown with no
// controls: blank cells under the window border.
func (w *Window) resetBackdrop() {
	w.working.Fill(w.blank())
	border.Paint(w.working, w.border, w.fg, w.bg)
}

// UpdateScreen composites every visible control in ascending z-order (ties
// keep insertion order) and writes only the cells that differ from the last
// pass. If the device fails the previous frame is kept, so the next call
// retries everything that was not confirmed.
func (w *Window) UpdateScreen() error {
	if w.closed {
		return terminal.ErrClosed
	}
	defer perf.Time("window.update_screen")()

	w.resetBackdrop()

	ordered := w.Controls()
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZOrder() < ordered[j].ZOrder()
	})
	for _, c := range ordered {
		if !c.Visible() {
			continue
		}
		if err := c.Draw(w.working); err != nil {
			return fmt.Errorf("draw control: %w", err)
		}
	}

	written, err := w.emitChanges()
	w.lastWritten = written
	perf.Count("window.cells_written", int64(written))
	if err != nil {
		logging.Warn("window: update screen: %v", err)
		return err
	}
	logging.Debug("window: wrote %d cells", written)

	w.lastRendered = buffer.Clone(w.working)
	return nil
}

func (w *Window) emitChanges() (int, error) {
	written := 0
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			// Both buffers share the window's size.
			cur, _ := w.working.Get(x, y)
			prev, _ := w.lastRendered.Get(x, y)
			if cur.Equal(prev) {
				continue
			}
			if err := w.dev.SetCursorPosition(x, y); err != nil {
				return written, fmt.Errorf("move to %d,%d: %w", x, y, err)
			}
			if err := w.dev.SetColors(cur.Fg, cur.Bg); err != nil {
				return written, fmt.Errorf("set colors at %d,%d: %w", x, y, err)
			}
			if err := w.dev.WriteChar(cur.Rune); err != nil {
				return written, fmt.Errorf("write at %d,%d: %w", x, y, err)
			}
			written++
		}
	}
	if err := w.dev.Flush(); err != nil {
		return written, fmt.Errorf("flush: %w", err)
	}
	return written, nil
}

// LastStats returns the number of cells written by the last UpdateScreen.
func (w *Window) LastStats() int { return w.lastWritten }

// Snapshot returns a copy of what the device is showing.
func (w *Window) Snapshot() *buffer.Buffer {
	return buffer.Clone(w.lastRendered)
}

// Close restores the colors that were in effect before New and shows the
// cursor. The device itself is left open. Calling Close again does nothing.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return errors.Join(
		w.dev.SetColors(w.savedFg, w.savedBg),
		w.dev.SetCursorVisible(true),
		w.dev.Flush(),
	)
}
