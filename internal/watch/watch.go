// Package watch provides an fsnotify-based debounced watcher over a
// definitions directory, reloading the ontology when ".gen" files change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures definitions-directory watching.
type Config struct {
	// Dir is the definitions directory to watch.
	Dir string
	// DebounceDelay is the interval of the ticker that flushes pending
	// changes: changes seen within one tick trigger a single reload.
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with a conservative debounce delay.
func DefaultConfig(dir string) Config {
	return Config{Dir: dir, DebounceDelay: 500 * time.Millisecond}
}

// ReloadFunc is called with the watched directory whenever a ".gen" file
// changes and the debounce window has elapsed. A non-nil error is logged but
// does not stop the watcher: the next file change gets another attempt.
type ReloadFunc func(dir string) error

// DefinitionsWatcher watches Dir for ".gen" file changes and debounces them
// into calls to a ReloadFunc.
type DefinitionsWatcher struct {
	config Config
	fsw    *fsnotify.Watcher
	logger *slog.Logger
	reload ReloadFunc

	pendingMu sync.Mutex
	pending   bool

	reloadCount atomic.Int64
}

// NewDefinitionsWatcher creates a watcher over config.Dir that invokes
// reload on debounced change. logger defaults to slog.Default() if nil.
func NewDefinitionsWatcher(config Config, logger *slog.Logger, reload ReloadFunc) (*DefinitionsWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}
	return &DefinitionsWatcher{
		config: config,
		fsw:    fsw,
		logger: logger,
		reload: reload,
	}, nil
}

// Start adds a watch on Dir and begins processing events. It returns once
// the watch is established; event processing runs in a background
// goroutine until ctx is canceled or Stop is called.
func (w *DefinitionsWatcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.config.Dir, 0o755); err != nil {
		return err
	}
	if err := w.fsw.Add(w.config.Dir); err != nil {
		return err
	}
	go w.processEvents(ctx)
	w.logger.Info("definitions watcher started", slog.String("dir", w.config.Dir), slog.Duration("debounce", w.config.DebounceDelay))
	return nil
}

// Stop closes the underlying fsnotify watcher, ending event processing.
func (w *DefinitionsWatcher) Stop() error {
	return w.fsw.Close()
}

// ReloadCount reports how many reloads have succeeded (a reload that returns
// an error is not counted), for tests and diagnostics.
func (w *DefinitionsWatcher) ReloadCount() int64 {
	return w.reloadCount.Load()
}

func (w *DefinitionsWatcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("definitions watcher error", slog.String("error", err.Error()))
		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *DefinitionsWatcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".gen") {
		return
	}
	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
	w.logger.Debug("definitions change detected", slog.String("path", filepath.Base(event.Name)), slog.String("op", event.Op.String()))
}

func (w *DefinitionsWatcher) flushPending() {
	w.pendingMu.Lock()
	if !w.pending {
		w.pendingMu.Unlock()
		return
	}
	w.pending = false
	w.pendingMu.Unlock()

	if w.reload == nil {
		return
	}
	if err := w.reload(w.config.Dir); err != nil {
		w.logger.Warn("definitions reload failed", slog.String("error", err.Error()))
		return
	}
	w.reloadCount.Add(1)
	w.logger.Info("definitions reloaded", slog.String("dir", w.config.Dir))
}
