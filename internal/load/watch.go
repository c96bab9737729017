package load

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event signals that the watched export changed on disk.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watch reports changes to the export at path until ctx is cancelled.
// The parent directory is watched so editors that replace the file by
// rename are still seen.
func Watch(ctx context.Context, log *slog.Logger, path string) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	events := make(chan Event, 16)
	go func() {
		defer fsw.Close()
		defer close(events)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				select {
				case events <- Event{Path: abs, Op: ev.Op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", "path", abs, "err", err)
			}
		}
	}()

	return events, nil
}
