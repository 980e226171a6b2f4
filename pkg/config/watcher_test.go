package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := writeConfig(t, "reliability:\n  max_attempts: 2\n")

	w := NewWatcher(path, nil)
	w.SetDebounceInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(cfg *Config) { reloaded <- cfg })
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case cfg := <-reloaded:
			if cfg.Reliability.MaxAttempts != 5 {
				t.Errorf("expected reloaded max attempts 5, got %d", cfg.Reliability.MaxAttempts)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned error: %v", err)
			}
			return
		case <-tick.C:
			// The watcher may not be registered yet; keep touching the file.
			if err := os.WriteFile(path, []byte("reliability:\n  max_attempts: 5\n"), 0644); err != nil {
				t.Fatalf("failed to rewrite config: %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatcher_InvalidEditIgnored(t *testing.T) {
	path := writeConfig(t, "reliability:\n  max_attempts: 2\n")

	w := NewWatcher(path, nil)
	var calls int
	w.reload(func(*Config) { calls++ })
	if calls != 1 {
		t.Fatalf("expected valid reload to call back once, got %d", calls)
	}

	if err := os.WriteFile(path, []byte("audit:\n  backend: tape\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	w.reload(func(*Config) { calls++ })
	if calls != 1 {
		t.Errorf("invalid config should not reach the callback, got %d calls", calls)
	}
}

func TestWatcher_StopWaitsForRunningReload(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "engine.yaml"), nil)
	w.SetDebounceInterval(0)

	started := make(chan struct{})
	var finished atomic.Bool
	w.trigger(func() {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})

	<-started
	w.stopTimer()
	if !finished.Load() {
		t.Error("stopTimer returned while a reload was still running")
	}
}

func TestWatcher_StopCancelsScheduledReload(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "engine.yaml"), nil)
	w.SetDebounceInterval(time.Hour)

	var ran atomic.Bool
	w.trigger(func() { ran.Store(true) })
	w.trigger(func() { ran.Store(true) })
	w.stopTimer()

	if ran.Load() {
		t.Error("scheduled reload ran after stopTimer")
	}
}
