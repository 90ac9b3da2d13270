package window

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/xanthalas/consoleui/internal/border"
	"github.com/xanthalas/consoleui/internal/cell"
	"github.com/xanthalas/consoleui/internal/control"
	"github.com/xanthalas/consoleui/internal/perf"
	"github.com/xanthalas/consoleui/internal/terminal"
)

func newWindow(t *testing.T, w, h int, opts ...Option) (*Window, *terminal.Recorder) {
	t.Helper()
	rec := terminal.NewRecorder(w, h)
	win, err := New(rec, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rec.Reset()
	return win, rec
}

func textbox(t *testing.T, w, h int, text string) *control.Textbox {
	t.Helper()
	tb, err := control.NewTextbox(w, h)
	if err != nil {
		t.Fatalf("NewTextbox failed: %v", err)
	}
	if err := tb.Write(text); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return tb
}

func mustUpdate(t *testing.T, win *Window) {
	t.Helper()
	if err := win.UpdateScreen(); err != nil {
		t.Fatalf("UpdateScreen failed: %v", err)
	}
}

func TestNewRejectsEmptyDevice(t *testing.T) {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, -1}} {
		if _, err := New(terminal.NewRecorder(size[0], size[1])); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("%v: expected ErrInvalidDimensions, got %v", size, err)
		}
	}
}

func TestNewPreparesDevice(t *testing.T) {
	rec := terminal.NewRecorder(6, 3)
	win, err := New(rec, WithBackground(cell.Blue))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if win.Width() != 6 || win.Height() != 3 {
		t.Fatalf("window size %dx%d", win.Width(), win.Height())
	}
	if rec.CursorVisible() {
		t.Fatalf("cursor should be hidden")
	}
	c, _ := rec.Screen().Get(5, 2)
	if c.Bg != cell.Blue {
		t.Fatalf("screen not cleared to backdrop: %+v", c)
	}
	if len(rec.Writes()) != 0 {
		t.Fatalf("New should not write characters")
	}
}

func TestEmptyWindowWritesNothing(t *testing.T) {
	win, rec := newWindow(t, 8, 4)
	mustUpdate(t, win)
	if win.LastStats() != 0 || len(rec.Writes()) != 0 {
		t.Fatalf("expected no writes, got %d", len(rec.Writes()))
	}
	if rec.Flushes() != 1 {
		t.Fatalf("expected one flush, got %d", rec.Flushes())
	}
}

func TestOnlyChangedCellsAreWritten(t *testing.T) {
	win, rec := newWindow(t, 12, 3)
	tb := textbox(t, 10, 1, "Hello")
	tb.SetPosition(2, 1)
	_ = win.AddControl(tb)

	mustUpdate(t, win)
	if win.LastStats() != 5 {
		t.Fatalf("first pass wrote %d cells, want 5", win.LastStats())
	}
	if got := rec.Screen().Lines()[1]; got != "  Hello     " {
		t.Fatalf("row 1 = %q", got)
	}

	rec.Reset()
	mustUpdate(t, win)
	if win.LastStats() != 0 || len(rec.Writes()) != 0 {
		t.Fatalf("unchanged pass wrote %d cells", len(rec.Writes()))
	}

	_ = tb.SetCursor(0, 0)
	_ = tb.Write("J")
	rec.Reset()
	mustUpdate(t, win)
	writes := rec.Writes()
	if len(writes) != 1 || writes[0].X != 2 || writes[0].Y != 1 || writes[0].Cell.Rune != 'J' {
		t.Fatalf("expected a single write of J at 2,1, got %+v", writes)
	}
}

func TestColorChangeIsACellChange(t *testing.T) {
	win, rec := newWindow(t, 3, 1)
	tb := textbox(t, 1, 1, "x")
	_ = win.AddControl(tb)
	mustUpdate(t, win)

	tb.SetForeground(cell.Red)
	rec.Reset()
	mustUpdate(t, win)
	writes := rec.Writes()
	if len(writes) != 1 || writes[0].Cell.Fg != cell.Red {
		t.Fatalf("expected recolored cell to be rewritten, got %+v", writes)
	}
}

func TestZOrderDecidesOverlap(t *testing.T) {
	win, rec := newWindow(t, 5, 1)
	top := textbox(t, 3, 1, "AAA")
	top.SetZOrder(3)
	under := textbox(t, 3, 1, "BBB")
	under.SetZOrder(2)
	under.SetPosition(1, 0)

	// Added first but drawn last.
	_ = win.AddControl(top)
	_ = win.AddControl(under)
	mustUpdate(t, win)

	if got := rec.Screen().Lines()[0]; got != "AAAB " {
		t.Fatalf("screen = %q, want %q", got, "AAAB ")
	}
}

func TestEqualZOrderKeepsInsertionOrder(t *testing.T) {
	win, rec := newWindow(t, 4, 1)
	first := textbox(t, 3, 1, "111")
	second := textbox(t, 3, 1, "222")
	second.SetPosition(1, 0)
	_ = win.AddControl(first)
	_ = win.AddControl(second)
	mustUpdate(t, win)

	if got := rec.Screen().Lines()[0]; got != "1222" {
		t.Fatalf("screen = %q, want %q", got, "1222")
	}
}

func TestBorderSitsBeneathControls(t *testing.T) {
	win, rec := newWindow(t, 6, 3, WithBorder(border.New(border.Single)))
	mustUpdate(t, win)
	if got := rec.Screen().Lines(); got[0] != "┌────┐" || got[1] != "│    │" || got[2] != "└────┘" {
		t.Fatalf("border = %q", got)
	}

	tb := textbox(t, 2, 1, "ok")
	_ = win.AddControl(tb)
	mustUpdate(t, win)
	if got := rec.Screen().Lines()[0]; got != "ok───┐" {
		t.Fatalf("row 0 = %q", got)
	}
	if win.Border().Kind != border.Single {
		t.Fatalf("Border() = %v", win.Border().Kind)
	}
}

func TestSetBorderRedrawsEdges(t *testing.T) {
	win, rec := newWindow(t, 4, 2, WithBorder(border.New(border.Simple)))
	mustUpdate(t, win)

	win.SetBorder(border.New(border.Double))
	mustUpdate(t, win)
	if win.LastStats() != 8 {
		t.Fatalf("border swap wrote %d cells, want 8", win.LastStats())
	}
	if got := rec.Screen().Lines(); got[0] != "╔══╗" || got[1] != "╚══╝" {
		t.Fatalf("screen = %q", got)
	}

	win.SetBorder(border.New(border.None))
	mustUpdate(t, win)
	if got := rec.Screen().Lines()[0]; got != "    " {
		t.Fatalf("border not removed: %q", got)
	}
}

func TestHiddenControlDisappears(t *testing.T) {
	win, rec := newWindow(t, 4, 1)
	tb := textbox(t, 2, 1, "hi")
	_ = win.AddControl(tb)
	mustUpdate(t, win)

	tb.SetVisibility(control.Hidden)
	mustUpdate(t, win)
	if win.LastStats() != 2 {
		t.Fatalf("hiding should rewrite 2 cells, wrote %d", win.LastStats())
	}
	if got := rec.Screen().Lines()[0]; got != "    " {
		t.Fatalf("screen = %q", got)
	}
}

func TestAddControlValidation(t *testing.T) {
	win, _ := newWindow(t, 4, 4)
	if err := win.AddControl(nil); !errors.Is(err, ErrNilControl) {
		t.Fatalf("expected ErrNilControl, got %v", err)
	}

	tb := textbox(t, 1, 1, "")
	if err := win.AddControl(tb); err != nil {
		t.Fatalf("AddControl failed: %v", err)
	}
	if err := win.AddControl(tb); !errors.Is(err, ErrDuplicateControl) {
		t.Fatalf("expected ErrDuplicateControl, got %v", err)
	}
	if len(win.Controls()) != 1 {
		t.Fatalf("expected one child, got %d", len(win.Controls()))
	}
	if p, ok := tb.Parent().(*Window); !ok || p != win {
		t.Fatalf("parent not set to window: %v", tb.Parent())
	}
}

func TestAddControlRejectsControlOwnedElsewhere(t *testing.T) {
	first, _ := newWindow(t, 4, 4)
	second, _ := newWindow(t, 4, 4)
	tb := textbox(t, 1, 1, "")
	if err := first.AddControl(tb); err != nil {
		t.Fatalf("AddControl failed: %v", err)
	}
	if err := second.AddControl(tb); !errors.Is(err, ErrDuplicateControl) {
		t.Fatalf("expected ErrDuplicateControl, got %v", err)
	}
	if len(second.Controls()) != 0 {
		t.Fatalf("second window took the control")
	}
	if p, ok := tb.Parent().(*Window); !ok || p != first {
		t.Fatalf("parent changed: %v", tb.Parent())
	}

	first.RemoveControl(tb)
	if err := second.AddControl(tb); err != nil {
		t.Fatalf("AddControl after removal failed: %v", err)
	}
}

func TestRemoveControl(t *testing.T) {
	win, rec := newWindow(t, 3, 1)
	tb := textbox(t, 3, 1, "abc")
	_ = win.AddControl(tb)
	mustUpdate(t, win)

	if !win.RemoveControl(tb) {
		t.Fatalf("RemoveControl returned false")
	}
	if win.RemoveControl(tb) {
		t.Fatalf("second RemoveControl returned true")
	}
	if tb.Parent() != nil {
		t.Fatalf("parent not cleared")
	}
	mustUpdate(t, win)
	if got := rec.Screen().Lines()[0]; got != "   " {
		t.Fatalf("removed control still shown: %q", got)
	}
}

func TestDeviceErrorDoesNotCommit(t *testing.T) {
	win, rec := newWindow(t, 4, 1)
	_ = win.AddControl(textbox(t, 4, 1, "abcd"))

	rec.FailAfter = 2
	if err := win.UpdateScreen(); err == nil {
		t.Fatalf("expected device error")
	}
	if got := win.Snapshot().Lines()[0]; got != "    " {
		t.Fatalf("failed pass was committed: %q", got)
	}

	rec.FailAfter = 0
	rec.Reset()
	mustUpdate(t, win)
	if win.LastStats() != 4 {
		t.Fatalf("retry wrote %d cells, want 4", win.LastStats())
	}
	if got := win.Snapshot().Lines()[0]; got != "abcd" {
		t.Fatalf("snapshot = %q", got)
	}
}

// stubbornDevice fails one setup call after the cursor has been hidden.
type stubbornDevice struct {
	*terminal.Recorder
	failClear bool
	failFlush bool
}

func (d *stubbornDevice) ClearScreen() error {
	if d.failClear {
		return errors.New("clear refused")
	}
	return d.Recorder.ClearScreen()
}

func (d *stubbornDevice) Flush() error {
	if d.failFlush {
		d.failFlush = false
		return errors.New("flush refused")
	}
	return d.Recorder.Flush()
}

func TestNewRestoresCursorOnSetupFailure(t *testing.T) {
	tests := []struct {
		name string
		dev  *stubbornDevice
	}{
		{"clear screen", &stubbornDevice{failClear: true}},
		{"flush", &stubbornDevice{failFlush: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.dev.Recorder = terminal.NewRecorder(3, 2)
			_ = tt.dev.Recorder.SetColors(cell.Red, cell.Blue)
			if _, err := New(tt.dev, WithBackground(cell.Black)); err == nil {
				t.Fatalf("expected New to fail")
			}
			if !tt.dev.CursorVisible() {
				t.Fatalf("cursor left hidden")
			}
			if fg, bg := tt.dev.Colors(); fg != cell.Red || bg != cell.Blue {
				t.Fatalf("colors after failure = %v/%v", fg, bg)
			}
		})
	}
}

func TestCloseRestoresColors(t *testing.T) {
	rec := terminal.NewRecorder(3, 2)
	_ = rec.SetColors(cell.Red, cell.Blue)
	win, err := New(rec, WithBackground(cell.Black), WithForeground(cell.White))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mustUpdate(t, win)

	if err := win.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if fg, bg := rec.Colors(); fg != cell.Red || bg != cell.Blue {
		t.Fatalf("colors after Close = %v/%v", fg, bg)
	}
	if !rec.CursorVisible() {
		t.Fatalf("cursor not shown after Close")
	}
	if err := win.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if err := win.UpdateScreen(); !errors.Is(err, terminal.ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
}

func TestUpdateScreenRecordsPerf(t *testing.T) {
	restore := perf.EnableForTest()
	defer restore()

	win, _ := newWindow(t, 4, 1)
	_ = win.AddControl(textbox(t, 3, 1, "xyz"))
	mustUpdate(t, win)

	report := perf.Snapshot()
	if len(report.Timings) != 1 || report.Timings[0].Name != "window.update_screen" || report.Timings[0].Count != 1 {
		t.Fatalf("missing update timing in %+v", report.Timings)
	}
	if len(report.Counters) != 1 || report.Counters[0] != (perf.Counter{Name: "window.cells_written", Value: 3}) {
		t.Fatalf("unexpected counters %+v", report.Counters)
	}
}

func TestWindowOnTcellSimulation(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	dev, err := terminal.NewTcellScreen(sim)
	if err != nil {
		t.Fatalf("NewTcellScreen failed: %v", err)
	}
	defer dev.Close()
	sim.SetSize(8, 3)

	win, err := New(dev, WithBorder(border.New(border.Double)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tb := textbox(t, 4, 1, "tcel")
	tb.SetPosition(2, 1)
	tb.SetForeground(cell.BrightGreen)
	_ = win.AddControl(tb)
	mustUpdate(t, win)

	cells, w, _ := sim.GetContents()
	runeAt := func(x, y int) rune {
		if rs := cells[y*w+x].Runes; len(rs) > 0 {
			return rs[0]
		}
		return 0
	}
	if runeAt(0, 0) != '╔' || runeAt(7, 2) != '╝' {
		t.Fatalf("border corners = %q %q", runeAt(0, 0), runeAt(7, 2))
	}
	if runeAt(2, 1) != 't' || runeAt(5, 1) != 'l' {
		t.Fatalf("text = %q..%q", runeAt(2, 1), runeAt(5, 1))
	}
	fg, _, _ := cells[1*w+3].Style.Decompose()
	if fg != terminal.TcellColor(cell.BrightGreen) {
		t.Fatalf("text color = %v", fg)
	}
}
