package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long to wait for more events before reloading, as
// editors often write files in multiple steps.
const debounceDelay = 100 * time.Millisecond

// Watch loads the files, calls fn with the outcome and calls it again after
// every change to one of them. It blocks until ctx is cancelled, and returns
// nil then.
func (l *Loader) Watch(ctx context.Context, fn func(*Result, error), filenames ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch before the first load so no change goes unnoticed.
	files := make([]string, 0, len(filenames))
	for _, filename := range filenames {
		file, err := filepath.Abs(filename)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
		}
		if err := watcher.Add(file); err != nil {
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
		files = append(files, file)
	}

	result, err := l.Load(ctx, filenames...)
	fn(result, err)

	reload := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Remove and Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			result, err := l.Load(ctx, filenames...)
			if ctx.Err() != nil {
				return nil
			}
			fn(result, err)

			// Re-add the files to catch ones that were replaced
			for _, file := range files {
				_ = watcher.Add(file)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher: %w", err)
		}
	}
}
