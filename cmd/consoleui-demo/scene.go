package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xanthalas/consoleui/internal/border"
	"github.com/xanthalas/consoleui/internal/cell"
	"github.com/xanthalas/consoleui/internal/config"
	"github.com/xanthalas/consoleui/internal/control"
	"github.com/xanthalas/consoleui/internal/logging"
	"github.com/xanthalas/consoleui/internal/window"
)

// The accent panel spans columns 25-36 and rows 2-13.
const (
	minWidth  = 38
	minHeight = 14
)

var errTooSmall = errors.New("terminal too small for the demo")

// scene is the demo window and the three textboxes it steps through.
type scene struct {
	win        *window.Window
	background *control.Textbox
	panel      *control.Textbox
	accent     *control.Textbox
}

type step struct {
	name string
	run  func() error
}

func newScene(win *window.Window, palette config.Palette) (*scene, error) {
	if win.Width() < minWidth || win.Height() < minHeight {
		return nil, fmt.Errorf("%w: need %dx%d, have %dx%d", errTooSmall, minWidth, minHeight, win.Width(), win.Height())
	}

	background, err := control.NewTextbox(win.Width()-2, win.Height()-4)
	if err != nil {
		return nil, err
	}
	background.SetPosition(1, 1)

	panel, err := control.NewTextbox(5, 5)
	if err != nil {
		return nil, err
	}
	panel.SetZOrder(2)
	panel.SetPosition(1, 1)
	panel.SetBorder(border.New(border.Single))

	accent, err := control.NewTextbox(12, 12)
	if err != nil {
		return nil, err
	}
	accent.SetPosition(25, 2)

	s := &scene{win: win, background: background, panel: panel, accent: accent}
	s.applyPalette(palette)
	return s, nil
}

// applyPalette recolors the window border and the three textboxes.
func (s *scene) applyPalette(p config.Palette) {
	s.win.SetBorder(p.WindowBorder)
	s.background.SetBackground(p.Background)
	s.panel.SetBackground(p.PanelBg)
	s.accent.SetBackground(p.Accent)
}

func (s *scene) writeAccent() error {
	if err := s.accent.Write("Waste a moment"); err != nil {
		return err
	}
	return s.accent.Write("Now write another longer one")
}

func (s *scene) steps() []step {
	return []step{
		{"add background and panel", func() error {
			if err := s.win.AddControl(s.background); err != nil {
				return err
			}
			return s.win.AddControl(s.panel)
		}},
		{"add accent", func() error {
			s.panel.SetZOrder(3)
			return s.win.AddControl(s.accent)
		}},
		{"double panel border", func() error {
			s.panel.SetBorder(border.New(border.Double))
			return nil
		}},
		{"colored panel border", func() error {
			s.panel.SetBorder(border.NewColored(border.Double, cell.Green, cell.Black))
			return nil
		}},
		{"fill accent", func() error {
			s.accent.FillWithChar('*')
			return nil
		}},
		{"bordered accent text", func() error {
			s.accent.SetBorder(border.New(border.Single))
			s.accent.FillWithChar('"')
			return s.writeAccent()
		}},
		{"borderless accent text", func() error {
			s.accent.SetBorder(border.New(border.None))
			s.accent.FillWithChar('~')
			if err := s.accent.SetCursor(0, 0); err != nil {
				return err
			}
			return s.writeAccent()
		}},
		{"truncated panel text", func() error {
			s.panel.Clear()
			s.panel.WordWrap = false
			return s.panel.Write("This long line should be truncated")
		}},
		{"raise background", func() error {
			s.background.SetZOrder(20)
			return nil
		}},
		{"lower background", func() error {
			s.background.SetZOrder(0)
			return nil
		}},
	}
}

// play runs every step, redrawing after each and pausing delay between
// them. It stops early when ctx is done.
func (s *scene) play(ctx context.Context, delay time.Duration) error {
	for i, st := range s.steps() {
		if i > 0 {
			if err := pause(ctx, delay); err != nil {
				return err
			}
		}
		if err := st.run(); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
		if err := s.win.UpdateScreen(); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
		logging.Debug("demo: %s (%d cells)", st.name, s.win.LastStats())
	}
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
