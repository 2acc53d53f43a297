// Package browser opens rendered documents in the user's default browser.
package browser

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	pkgbrowser "github.com/pkg/browser"

	"github.com/turtacn/qsphere/pkg/errors"
)

// Launcher opens a local file.
type Launcher interface {
	Open(ctx context.Context, path string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context, path string) error

func (f LauncherFunc) Open(ctx context.Context, path string) error { return f(ctx, path) }

var quietOnce sync.Once

// System launches the platform opener (xdg-open, open, rundll32).
type System struct{}

// NewSystem returns a launcher that keeps the opener's own output off the
// terminal.
func NewSystem() System {
	quietOnce.Do(func() {
		pkgbrowser.Stdout = io.Discard
		pkgbrowser.Stderr = io.Discard
	})
	return System{}
}

func (System) Open(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBrowserLaunchFailed, "failed to resolve path")
	}
	if err := pkgbrowser.OpenFile(abs); err != nil {
		return errors.Wrap(err, errors.ErrCodeBrowserLaunchFailed, "failed to open browser").WithDetail("path=" + abs)
	}
	return nil
}

// Noop never opens anything.
type Noop struct{}

func (Noop) Open(context.Context, string) error { return nil }

// Recorder remembers every path it was asked to open.  Useful in tests and in
// headless environments.
type Recorder struct {
	mu    sync.Mutex
	paths []string
	Err   error
}

func (r *Recorder) Open(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return r.Err
}

func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

//Personal.AI order the ending
