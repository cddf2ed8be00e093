package infer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/tinfer/internal/session"
	tt "github.com/gnolang/tinfer/internal/types"
)

// settleDelay groups the writes of one save into a single run.
const settleDelay = 100 * time.Millisecond

// ReportFunc receives the reports of a re-run trace, or the error that
// stopped it.
type ReportFunc func(path string, reports []tt.PointReport, err error)

// Watcher re-runs inference over trace files whenever they are written.
// Every run builds fresh points, so no state carries over between runs.
type Watcher struct {
	cx       *session.Session
	watcher  *fsnotify.Watcher
	onReport ReportFunc
	paths    map[string]bool
}

func NewWatcher(cx *session.Session, onReport ReportFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		cx:       cx,
		watcher:  fw,
		onReport: onReport,
		paths:    make(map[string]bool),
	}, nil
}

// Add watches the given trace files. Their directories are watched so
// that editors replacing the file on save are seen too.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("error adding %s to watcher: %w", p, err)
		}
		w.paths[abs] = true
	}
	return nil
}

// Watch blocks until ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.cx.Logger().Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	path, ok := w.tracePath(event)
	if !ok {
		return
	}

	time.Sleep(settleDelay)
	pending := []string{path}
	for _, p := range w.drain() {
		if !slices.Contains(pending, p) {
			pending = append(pending, p)
		}
	}
	for _, p := range pending {
		if ctx.Err() != nil {
			return
		}
		w.rerun(ctx, p)
	}
}

// tracePath returns the watched trace an event writes to.
func (w *Watcher) tracePath(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return "", false
	}
	path := filepath.Clean(event.Name)
	return path, w.paths[path]
}

func (w *Watcher) rerun(ctx context.Context, path string) {
	w.cx.Logger().Info("trace changed", zap.String("path", path))
	inputs, err := LoadFiles(w.cx, []string{path})
	if err != nil {
		w.onReport(path, nil, err)
		return
	}
	reports, err := Run(ctx, w.cx, inputs, nil)
	if errors.Is(err, context.Canceled) {
		return
	}
	w.onReport(path, reports, err)
}

// drain takes the events queued while a save settles and returns the
// watched traces they write to, in arrival order.
func (w *Watcher) drain() []string {
	var paths []string
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return paths
			}
			if p, ok := w.tracePath(event); ok {
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}
