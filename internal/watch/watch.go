// Package watch reports when directory trees change, coalescing bursts of
// filesystem events into a single notification.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes every directory below a set of roots.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
	skip     func(path string) bool
}

type Options struct {
	Debounce time.Duration
	Logger   *log.Logger
	// Skip reports directories that should not be watched.
	Skip func(path string) bool
}

// New starts watching roots and all of their subdirectories.
func New(roots []string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		skip:     opts.Skip,
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard, "", 0)
	}
	if w.skip == nil {
		w.skip = func(string) bool { return false }
	}

	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addRecursive adds a directory and all its subdirectories to the watch list
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.logger.Printf("not watching %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skip(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.logger.Printf("not watching %s: %v", path, err)
		}
		return nil
	})
}

// Run calls onChange once per quiet period after one or more events, until
// ctx is done or the watcher is closed. Calls are never concurrent.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	return w.loop(ctx, w.fsw.Events, w.fsw.Errors, onChange)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onChange func()) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Printf("change: %s", event)

			// New directories must be watched before their contents change
			if event.Op&fsnotify.Create == fsnotify.Create {
				if isDir(event.Name) && !w.skip(event.Name) {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Printf("%v", err)
					}
				}
			}

			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Printf("watch error: %v", err)

		case <-timer.C:
			if pending {
				pending = false
				onChange()
			}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
