// Package watch re-runs an action whenever configuration files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/psetgo/internal/ctxlog"
	"github.com/specialistvlad/psetgo/internal/fsutil"
)

// DefaultDebounce is how long the watcher waits for further changes before
// firing. Editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc is called with the sorted list of changed files.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher observes a document file or directory.
type Watcher struct {
	root       string
	extensions []string
	debounce   time.Duration
}

// New creates a watcher for root, reacting to files with the given
// extensions. A debounce of zero selects DefaultDebounce.
func New(root string, debounce time.Duration, extensions ...string) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{root: root, extensions: extensions, debounce: debounce}
}

// Run watches until ctx is cancelled, calling fn after each settled burst
// of changes. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	logger := ctxlog.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	singleFile := ""
	if info.IsDir() {
		if err := w.addTree(fw, w.root); err != nil {
			return err
		}
	} else {
		// Watch the parent so that atomic saves (write temp, rename) are seen.
		singleFile = filepath.Clean(w.root)
		if err := fw.Add(filepath.Dir(singleFile)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", w.root, err)
		}
	}
	logger.Info("Watching for changes.", "path", w.root, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopped.", "path", w.root)
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && singleFile == "" {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(event, singleFile) {
				continue
			}
			logger.Debug("File change detected.", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			clear(pending)
			fn(ctx, changed)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event, singleFile string) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if singleFile != "" {
		return filepath.Clean(event.Name) == singleFile
	}
	return fsutil.HasExtension(event.Name, w.extensions...)
}

// addTree adds dir and all its subdirectories to the watcher.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
