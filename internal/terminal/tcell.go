package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/xanthalas/consoleui/internal/cell"
	"github.com/xanthalas/consoleui/internal/logging"
)

// Tcell adapts a tcell.Screen to the Device interface. Writes land in the
// screen's back buffer and become visible on Flush.
type Tcell struct {
	screen tcell.Screen

	x, y          int
	cursorVisible bool
	fg, bg        cell.Color
	style         tcell.Style
	closed        bool
}

// NewTcell initialises a screen on the controlling terminal.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	return NewTcellScreen(screen)
}

// NewTcellScreen wraps an existing screen, calling Init on it. Tests pass a
// tcell.SimulationScreen here.
func NewTcellScreen(screen tcell.Screen) (*Tcell, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init tcell screen: %w", err)
	}
	w, h := screen.Size()
	logging.Info("terminal: tcell screen %dx%d", w, h)
	return &Tcell{
		screen:        screen,
		cursorVisible: true,
		style:         tcell.StyleDefault,
	}, nil
}

// Screen exposes the wrapped screen.
func (t *Tcell) Screen() tcell.Screen { return t.screen }

func (t *Tcell) Dimensions() (int, int, error) {
	if t.closed {
		return 0, 0, ErrClosed
	}
	w, h := t.screen.Size()
	return w, h, nil
}

func (t *Tcell) SetCursorVisible(visible bool) error {
	if t.closed {
		return ErrClosed
	}
	t.cursorVisible = visible
	return nil
}

func (t *Tcell) SetCursorPosition(x, y int) error {
	if t.closed {
		return ErrClosed
	}
	t.x, t.y = x, y
	return nil
}

func (t *Tcell) SetColors(fg, bg cell.Color) error {
	if t.closed {
		return ErrClosed
	}
	t.fg, t.bg = fg, bg
	t.style = tcell.StyleDefault.Foreground(TcellColor(fg)).Background(TcellColor(bg))
	return nil
}

func (t *Tcell) WriteChar(r rune) error {
	if t.closed {
		return ErrClosed
	}
	if r == 0 {
		r = ' '
	}
	t.screen.SetContent(t.x, t.y, r, nil, t.style)
	t.x++
	return nil
}

func (t *Tcell) ClearScreen() error {
	if t.closed {
		return ErrClosed
	}
	t.screen.SetStyle(t.style)
	t.screen.Clear()
	t.x, t.y = 0, 0
	return nil
}

func (t *Tcell) Colors() (cell.Color, cell.Color) {
	return t.fg, t.bg
}

// Flush shows pending changes and places the hardware cursor.
func (t *Tcell) Flush() error {
	if t.closed {
		return ErrClosed
	}
	if t.cursorVisible {
		t.screen.ShowCursor(t.x, t.y)
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
	return nil
}

// Close finalises the screen, restoring the terminal.
func (t *Tcell) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	logging.Info("terminal: tcell screen closed")
	return nil
}

// TcellColor converts a cell color to its tcell equivalent.
func TcellColor(c cell.Color) tcell.Color {
	switch c.Type {
	case cell.ColorIndexed:
		return tcell.PaletteColor(int(c.Value))
	case cell.ColorRGB:
		return tcell.NewHexColor(int32(c.Value & 0xffffff))
	default:
		return tcell.ColorDefault
	}
}
