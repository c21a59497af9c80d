package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/untoldecay/modelscore/internal/debug"
	"github.com/untoldecay/modelscore/internal/ui"
)

// Debouncer collapses bursts of Trigger calls into one call of action,
// issued once no trigger has arrived for the configured duration.
type Debouncer struct {
	duration time.Duration
	action   func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a debouncer that calls action after duration of quiet.
func NewDebouncer(duration time.Duration, action func()) *Debouncer {
	return &Debouncer{duration: duration, action: action}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.action)
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// watchFiles calls onChange once immediately and then after every debounced
// change to one of paths, until ctx is cancelled. Parent directories are
// watched so that editors replacing a file by rename are noticed.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	// Serialize runs; the debouncer fires on its own goroutine.
	var runMu sync.Mutex
	run := func() {
		runMu.Lock()
		defer runMu.Unlock()
		if ctx.Err() != nil {
			return
		}
		onChange()
		fmt.Fprintf(os.Stderr, "\n%s\n", ui.RenderMuted(fmt.Sprintf("Watching %d file(s) for changes. Press Ctrl+C to stop.", len(watched))))
	}
	debouncer := NewDebouncer(debounce, run)
	defer debouncer.Cancel()

	run()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debug.Logf("change detected: %s (%s)", event.Name, event.Op)
			debouncer.Trigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher error: %v\n", err)

		case <-ctx.Done():
			return nil
		}
	}
}
