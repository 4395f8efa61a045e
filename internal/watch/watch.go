// Package watch revalidates vendor records as their files change.
package watch

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"ssolint/engine/validate"
	"ssolint/internal/vendordir"
)

// Watcher runs the validation engine against files touched under the
// watched directories.
type Watcher struct {
	engine *validate.Engine
	logger *slog.Logger
}

// New creates a watcher around an engine.
func New(engine *validate.Engine, logger *slog.Logger) *Watcher {
	return &Watcher{engine: engine, logger: logger}
}

// Run watches dirs until ctx is done, invoking onResult for every vendor
// file written or created. Each revalidation is independent: one bad record
// never stops the loop.
func (w *Watcher) Run(ctx context.Context, dirs []string, onResult func(path string, res *validate.Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		w.logger.Info("watching", "dir", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !vendordir.IsVendorFile(event.Name) {
				continue
			}
			w.logger.Debug("revalidating", "file", event.Name)
			onResult(event.Name, w.engine.ValidateFile(event.Name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
