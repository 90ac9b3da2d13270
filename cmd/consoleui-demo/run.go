package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/term"
	"github.com/gdamore/tcell/v2"

	"github.com/xanthalas/consoleui/internal/buffer"
	"github.com/xanthalas/consoleui/internal/config"
	"github.com/xanthalas/consoleui/internal/logging"
	"github.com/xanthalas/consoleui/internal/perf"
	"github.com/xanthalas/consoleui/internal/safego"
	"github.com/xanthalas/consoleui/internal/terminal"
	"github.com/xanthalas/consoleui/internal/window"
)

func run(ctx context.Context, cfg *config.Config, configPath string, opts options, out io.Writer) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.ResolvedLogDir(), level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()
	logging.Info("Starting consoleui-demo %s (commit %s, device %q)", version, commit, cfg.Device)

	if cfg.Profile {
		perf.Configure(true, 0)
	}
	defer perf.Flush("exit")

	palette, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}

	dev, err := terminal.Open(cfg.Device, out)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			logging.Warn("demo: close device: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_, headless := dev.(*terminal.Recorder)
	screen, interactive := dev.(*terminal.Tcell)
	if interactive {
		safego.Go("demo input", func() {
			pollQuit(screen.Screen(), cancel)
		})
	}

	win, err := window.New(dev)
	if err != nil {
		return err
	}
	s, err := newScene(win, palette)
	if err != nil {
		_ = win.Close()
		return err
	}

	delay := time.Duration(cfg.StepDelayMs) * time.Millisecond
	if headless {
		delay = 0
	}

	err = safego.RunE("demo scene", func() error {
		if err := s.play(ctx, delay); err != nil {
			return err
		}
		switch {
		case opts.watch:
			return s.follow(ctx, configPath)
		case interactive:
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	frame := win.Snapshot()
	closeErr := win.Close()

	if headless && err == nil {
		writeFrame(out, frame)
	}
	if opts.copy {
		copyFrame(frame)
	}
	return errors.Join(err, closeErr)
}

// pollQuit cancels the demo on q, Esc or Ctrl-C. It returns once the screen
// is finalised.
func pollQuit(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if key.Key() == tcell.KeyCtrlC || key.Key() == tcell.KeyEscape || key.Rune() == 'q' {
			logging.Info("demo: quit requested")
			cancel()
			return
		}
	}
}

// follow reapplies the theme each time the config file changes until ctx
// is done. Reloads arrive on the watcher's goroutine and are handed over so
// the window is only touched here.
func (s *scene) follow(ctx context.Context, configPath string) error {
	reloads := make(chan *config.Config)
	safego.Go("config watch", func() {
		err := config.Watch(ctx, configPath, func(cfg *config.Config, err error) {
			if err != nil {
				logging.Warn("demo: reload %s: %v", configPath, err)
				return
			}
			select {
			case reloads <- cfg:
			case <-ctx.Done():
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Warn("demo: watch %s: %v", configPath, err)
		}
	})
	logging.Info("demo: watching %s", configPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cfg := <-reloads:
			palette, err := cfg.Theme.Resolve()
			if err != nil {
				logging.Warn("demo: reload %s: %v", configPath, err)
				continue
			}
			s.applyPalette(palette)
			if err := s.win.UpdateScreen(); err != nil {
				return err
			}
			logging.Info("demo: theme reloaded (%d cells)", s.win.LastStats())
		}
	}
}

// writeFrame prints the frame in color when out is a terminal and as plain
// text otherwise.
func writeFrame(out io.Writer, frame *buffer.Buffer) {
	text := frame.String()
	if f, ok := out.(*os.File); ok && term.IsTerminal(f.Fd()) {
		text = frame.Render()
	}
	_, _ = fmt.Fprintln(out, text)
}

func copyFrame(frame *buffer.Buffer) {
	if err := clipboard.WriteAll(frame.String()); err != nil {
		logging.Warn("demo: clipboard error: %v", err)
		return
	}
	logging.Info("demo: copied final frame to clipboard")
}
