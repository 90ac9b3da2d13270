// Package terminal provides the output devices a Window renders onto.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xanthalas/consoleui/internal/cell"
)

var (
	// ErrClosed is returned by every operation on a closed device.
	ErrClosed = errors.New("terminal device closed")
	// ErrUnknownDevice is returned by Open for an unrecognised kind.
	ErrUnknownDevice = errors.New("unknown terminal device")
)

// Default size used when the output has no queryable dimensions.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Device is the minimal character terminal a Window draws onto. Positions
// are zero based. Output may be buffered until Flush.
type Device interface {
	Dimensions() (width, height int, err error)
	SetCursorVisible(visible bool) error
	SetCursorPosition(x, y int) error
	SetColors(fg, bg cell.Color) error
	WriteChar(r rune) error
	ClearScreen() error
	// Colors returns the pair currently in effect.
	Colors() (fg, bg cell.Color)
	Flush() error
	Close() error
}

// Device kinds accepted by Open.
const (
	KindANSI     = "ansi"
	KindTcell    = "tcell"
	KindHeadless = "headless"
)

// Kinds lists the names Open understands.
func Kinds() []string {
	return []string{KindANSI, KindTcell, KindHeadless}
}

// Open creates a device by name. The ANSI device writes to out and switches
// to the alternate screen; tcell takes over the controlling terminal and
// ignores out; headless records into memory at the default size.
func Open(kind string, out io.Writer) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindANSI, "":
		return NewANSI(out, WithAltScreen()), nil
	case KindTcell:
		return NewTcell()
	case KindHeadless:
		return NewRecorder(DefaultWidth, DefaultHeight), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDevice, kind, strings.Join(Kinds(), ", "))
	}
}
