// Package watcher evicts cached analysis for files that change on disk.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"codescope/internal/index"
	"codescope/internal/lang"
)

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Watcher invalidates Manager entries when watched files are written,
// renamed, or removed. The next analysis of an evicted path rereads it
// from disk.
type Watcher struct {
	fs  *fsnotify.Watcher
	mgr *index.Manager
	log *zap.Logger
}

// New creates a Watcher bound to the given manager.
func New(mgr *index.Manager, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{fs: fw, mgr: mgr, log: log}, nil
}

// Add watches root and all of its subdirectories. fsnotify watches are
// not recursive, so each directory is registered individually.
func (w *Watcher) Add(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Run processes filesystem events until the context is canceled or the
// underlying watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skippedDirs[filepath.Base(event.Name)] {
				if err := w.fs.Add(event.Name); err != nil {
					w.log.Warn("watching new directory", zap.String("path", event.Name), zap.Error(err))
				}
			}
		}
		return
	}

	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if lang.Detect(event.Name) == lang.Unknown {
		return
	}

	w.mgr.Evict(event.Name)
	w.log.Debug("evicted changed file",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()))
}
