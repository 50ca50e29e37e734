package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"talentbridge_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = time.Second

// WatchFile calls reload after path is written, debounced, until ctx is done.
// The directory is watched so editors that replace the file are still seen.
func WatchFile(ctx context.Context, path string, reload func() error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", absPath, err)
	}

	go func() {
		defer watcher.Close()

		timer := time.NewTimer(debounce)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					timer.Reset(debounce)
				}
			case <-timer.C:
				if err := reload(); err != nil {
					logger.Log.Error("Failed to reload watched file", zap.String("path", absPath), zap.Error(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Log.Error("File watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
