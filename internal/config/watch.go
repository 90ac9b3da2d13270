package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/xanthalas/consoleui/internal/logging"
	"github.com/xanthalas/consoleui/internal/safego"
)

const watchDebounce = 150 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher

	path     string
	onReload func(*Config, error)
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher watches path. The directory is watched rather than the file so
// editors that replace the file on save are still seen. onReload runs on a
// timer goroutine with the freshly loaded config or the load error.
func NewWatcher(path string, onReload func(*Config, error)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	cw := &Watcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		onReload: onReload,
		debounce: watchDebounce,
	}
	if err := watcher.Add(filepath.Dir(cw.path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return cw, nil
}

// Watch runs a Watcher until ctx is done.
func Watch(ctx context.Context, path string, onReload func(*Config, error)) error {
	cw, err := NewWatcher(path, onReload)
	if err != nil {
		return err
	}
	defer cw.Close()
	return cw.Run(ctx)
}

// Run delivers reloads until ctx is done or the watcher is closed.
func (cw *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if cw.isConfigEvent(event) {
				cw.scheduleReload()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config: watch error: %v", err)
		}
	}
}

func (cw *Watcher) Close() error {
	var err error
	cw.closeOnce.Do(func() {
		cw.mu.Lock()
		cw.closed = true
		if cw.timer != nil {
			cw.timer.Stop()
			cw.timer = nil
		}
		cw.mu.Unlock()
		err = cw.watcher.Close()
	})
	return err
}

func (cw *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (cw *Watcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.closed {
		return
	}
	if cw.timer == nil {
		cw.timer = time.AfterFunc(cw.debounce, cw.fire)
	} else {
		cw.timer.Reset(cw.debounce)
	}
}

func (cw *Watcher) fire() {
	cw.mu.Lock()
	if cw.closed {
		cw.mu.Unlock()
		return
	}
	cw.timer = nil
	cw.mu.Unlock()

	safego.Run("config reload", func() {
		cfg, err := LoadFile(cw.path)
		if err != nil {
			logging.Warn("config: reload %s: %v", cw.path, err)
		} else {
			logging.Info("config: reloaded %s", cw.path)
		}
		if cw.onReload != nil {
			cw.onReload(cfg, err)
		}
	})
}
