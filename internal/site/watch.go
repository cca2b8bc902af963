package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval batches the burst of events an editor save produces
// (truncate, write, rename of the swap file) into a single rebuild.
const debounceInterval = 250 * time.Millisecond

// Watcher triggers a callback when files under the content tree change.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func()
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// WatchContent watches root recursively and calls onChange, debounced,
// after every relevant change. The watcher stops when ctx is cancelled.
func WatchContent(ctx context.Context, root string, onChange func(), logger *slog.Logger) (*Watcher, error) {
	w, err := newWatcher(root, debounceInterval, onChange, logger)
	if err != nil {
		return nil, err
	}
	go w.run(ctx)
	return w, nil
}

func newWatcher(root string, debounce time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		fsw:      fsw,
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addRecursive registers dir and every directory below it, skipping
// hidden and underscore-prefixed trees like the content loader does.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer w.fsw.Close()

	// Debounce timer so one editor save doesn't trigger several rebuilds.
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	w.logger.Info("watching content", "dir", w.root)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("content watcher stopped")
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}

			// New directories must be registered before files inside
			// them produce events.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.logger.Debug("content changed", "file", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("content watcher error", "error", err)
		}
	}
}

// ignored filters editor noise: hidden and underscore-prefixed names
// anywhere below the watched root.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}
