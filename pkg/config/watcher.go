package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is the quiet period before a reload is attempted.
const DefaultDebounceInterval = 100 * time.Millisecond

// Watcher reloads the configuration file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that editors
// which replace the file (write to temp + rename) are observed as well.
type Watcher struct {
	path     string
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	// pending counts scheduled and running reloads.
	pending sync.WaitGroup
}

// NewWatcher creates a watcher for the configuration file at path.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		interval: DefaultDebounceInterval,
		logger:   logger.With("component", "config.watcher"),
	}
}

// SetDebounceInterval overrides the debounce interval.
func (w *Watcher) SetDebounceInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// Watch blocks until ctx is cancelled, calling onReload with every configuration
// that loads and validates after a change. Reload failures are logged and the
// previous configuration stays in effect.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Config)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("config watcher started", "path", w.path)
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("config file event", "path", event.Name, "op", event.Op.String())
			w.trigger(func() { w.reload(onReload) })

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// trigger schedules fn after the debounce interval, replacing any pending call.
func (w *Watcher) trigger(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}
	w.pending.Add(1)
	w.timer = time.AfterFunc(w.interval, func() {
		defer w.pending.Done()
		fn()
	})
}

// stopTimer cancels a scheduled reload and waits for a running one to return.
func (w *Watcher) stopTimer() {
	w.mu.Lock()
	if w.timer != nil {
		if w.timer.Stop() {
			w.pending.Done()
		}
		w.timer = nil
	}
	w.mu.Unlock()

	w.pending.Wait()
}

func (w *Watcher) reload(onReload func(*Config)) {
	cfg, err := LoadConfigWithEnvOverrides(w.path)
	if err != nil {
		w.logger.Error("config reload failed, keeping previous configuration", "path", w.path, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	onReload(cfg)
}
