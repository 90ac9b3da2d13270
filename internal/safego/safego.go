// Package safego runs work with panic recovery so a failing watcher or
// render pass is logged and reported instead of leaving the terminal in the
// state the window put it in.
package safego

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/xanthalas/consoleui/internal/logging"
)

// ErrPanicked matches any *Panic with errors.Is.
var ErrPanicked = errors.New("recovered panic")

// Panic is the error a recovered panic is turned into.
type Panic struct {
	Name  string
	Value any
	Stack []byte
}

func (p *Panic) Error() string {
	return fmt.Sprintf("panic in %s: %v", p.Name, p.Value)
}

func (p *Panic) Is(target error) bool { return target == ErrPanicked }

var (
	handlerMu sync.RWMutex
	handler   func(*Panic)
)

// SetPanicHandler registers fn to be told about every recovered panic. Pass
// nil to remove it. A panicking handler is recovered and ignored.
func SetPanicHandler(fn func(*Panic)) {
	handlerMu.Lock()
	handler = fn
	handlerMu.Unlock()
}

func notify(p *Panic) {
	logging.Error("%v\n%s", p, p.Stack)

	handlerMu.RLock()
	fn := handler
	handlerMu.RUnlock()
	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(p)
}

// Recover must be deferred directly. It turns a panic into a *Panic stored
// in *errp, when errp is not nil.
func Recover(name string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if name == "" {
		name = "goroutine"
	}
	p := &Panic{Name: name, Value: r, Stack: debug.Stack()}
	notify(p)
	if errp != nil {
		*errp = p
	}
}

// RunE runs fn, returning its error or a *Panic.
func RunE(name string, fn func() error) (err error) {
	defer Recover(name, &err)
	return fn()
}

// Run runs fn, logging a panic instead of propagating it. Runtime-fatal
// errors such as concurrent map writes are not recoverable.
func Run(name string, fn func()) {
	defer Recover(name, nil)
	fn()
}

// Go runs fn on a new goroutine under Run.
func Go(name string, fn func()) {
	go Run(name, fn)
}
