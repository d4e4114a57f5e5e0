// Package watch regenerates declarations when the input document changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events a single save produces
const DefaultDebounce = 500 * time.Millisecond

// Callback runs after the watched file settles. Runs never overlap.
type Callback func(ctx context.Context) error

// Watcher watches one file for changes
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback Callback
	debounce time.Duration
	log      *zap.SugaredLogger

	runMu sync.Mutex // serializes callback runs

	timerMu sync.Mutex
	timer   *time.Timer
}

// New watches path. The parent directory is watched so files replaced by
// rename (as most editors save) keep being observed.
func New(path string, debounce time.Duration, callback Callback) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", path)
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		callback: callback,
		debounce: debounce,
		log:      logger.ComponentLogger("watch"),
	}, nil
}

// Run processes events until ctx is cancelled. It waits for an in-flight
// callback before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.log.Infow("Watching for changes", logger.FieldPath, w.path)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			w.runMu.Lock()
			w.runMu.Unlock()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Only Write or Create change the content we read
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debugw("Detected change",
				logger.FieldPath, event.Name,
				"op", event.Op.String())
			w.schedule(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// schedule restarts the debounce timer
func (w *Watcher) schedule(ctx context.Context) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.run(ctx)
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) run(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := w.callback(ctx); err != nil {
		// A failed run leaves the watcher going; the next save retries
		w.log.Errorw("Regeneration failed", logger.FieldError, err)
	}
}
