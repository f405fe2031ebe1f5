package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// watchContent calls rebuild once per burst of filesystem events under root
// until ctx is cancelled. Rebuild errors are logged and do not stop the watch.
func watchContent(ctx context.Context, root string, debounce time.Duration, logger interfaces.Logger, rebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	addWatch := func(dir string) error {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return nil
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		watched[dir] = true
		return nil
	}
	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return addWatch(path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	logger = logging.OrNoOp(logger)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addWatch(event.Name)
				}
			}
			logging.WithFields(logger, map[string]any{"path": event.Name}).Debug("watch.change_detected")
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			if err := rebuild(); err != nil {
				logging.WithFields(logger, map[string]any{"error": err}).Error("watch.rebuild_failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WithFields(logger, map[string]any{"error": err}).Warn("watch.error")
		}
	}
}
