package web

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/commitstreak/internal/contract"
)

// WatchConfig monitors path and calls onChange with the config returned by
// load each time the file is written. It runs until ctx is cancelled.
// A failed reload is logged and the previous config stays active.
func WatchConfig(ctx context.Context, path string, load func() (*contract.Config, error), onChange func(*contract.Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return err
	}
	slog.Info("config: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Atomic saves arrive as create events
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := load()
			if err != nil {
				slog.Error("config: reload failed, keeping previous config", "path", path, "err", err)
				continue
			}
			slog.Info("config: reloaded", "path", path)
			onChange(cfg)

			// The inode may have been replaced
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
