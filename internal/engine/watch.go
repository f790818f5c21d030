package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is how long Watch waits after the last file event before
// re-running.
const debounceInterval = 100 * time.Millisecond

// WatchFunc receives the result of each run of Watch.
type WatchFunc func(unit *Unit, err error)

// Watch annotates the files under paths once, then again whenever one of
// them is written or created, until ctx is done. Directories given in paths
// are re-discovered on every run so new files are picked up. Runs never
// overlap; fn is called from the watching goroutine.
func (e *Engine) Watch(ctx context.Context, paths []string, fn WatchFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	files, err := Discover(paths)
	if err != nil {
		return err
	}
	for _, dir := range watchDirs(paths, files) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	runOnce := func() {
		found, err := Discover(paths)
		if err != nil {
			fn(nil, err)
			return
		}
		files = found
		fn(e.AnnotateFiles(ctx, files))
	}
	runOnce()

	trigger := make(chan struct{}, 1)
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
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !watched(paths, files, event.Name) {
				continue
			}
			e.logger.Debug("file changed", "file", event.Name)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirs returns the directories to register with the watcher: every
// directory containing a discovered file plus every directory argument.
// Watching directories rather than files survives editors that save by
// replacing the file.
func watchDirs(paths, files []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, f := range files {
		add(filepath.Dir(f))
	}
	for _, p := range paths {
		if !contains(files, filepath.Clean(p)) {
			add(filepath.Clean(p))
		}
	}
	return dirs
}

// watched reports whether an event on name concerns the unit: a known file,
// or a new source file inside a directory argument.
func watched(paths, files []string, name string) bool {
	name = filepath.Clean(name)
	if contains(files, name) {
		return true
	}
	for _, p := range paths {
		p = filepath.Clean(p)
		if contains(files, p) {
			continue
		}
		if rel, err := filepath.Rel(p, name); err == nil && filepath.IsLocal(rel) {
			return contains(SourceExtensions, filepath.Ext(name))
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
