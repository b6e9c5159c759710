package config

import (
	"context"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-aviator/engine/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch reloads path whenever it is written and delivers each valid result on the returned channel.
// The parent directory is watched so editors that replace the file on save are still seen.
// Invalid reloads are logged and skipped. The channel holds one pending config; an unread
// config is replaced by a newer one. The channel is closed when ctx is done.
//
// Parameters:
//   - ctx: cancels the watch
//   - path: the config file to watch
//
// Returns:
//   - <-chan Config: reloaded configurations
//   - error: an error if the watcher cannot be created
func Watch(ctx context.Context, path string) (<-chan Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: resolve path")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "config: create watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, "config: watch directory")
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(abs)
				if err != nil {
					logger.Warn("config reload skipped: %v", err)
					continue
				}
				logger.Info("config reloaded from %s", abs)
				publish(out, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("config watcher: %v", err)
			}
		}
	}()
	return out, nil
}

// publish replaces any unread config so the reader always sees the newest one.
func publish(out chan Config, cfg Config) {
	for {
		select {
		case out <- cfg:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}
