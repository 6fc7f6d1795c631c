// Package ui provides the runner for the interactive list.
package ui

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/tui"
)

// Watcher streams a signal whenever the server side list changed.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

type UI struct {
	Engine *engine.Engine
	// Watcher is optional; without it the list only refreshes on demand.
	Watcher Watcher
	Logger  *slog.Logger
}

func (d *UI) Do(ctx context.Context) error {
	if d.Engine == nil {
		return errors.New("can not open ui, no connection to a todo server")
	}
	return tui.Run(ctx, d.Engine, d.changes(ctx))
}

// changes opens the watch stream. A nil channel means no live updates.
func (d *UI) changes(ctx context.Context) <-chan struct{} {
	if d.Watcher == nil {
		return nil
	}
	ch, err := d.Watcher.Watch(ctx)
	if err != nil {
		d.logger().Warn("watch unavailable", "err", err)
		return nil
	}
	return ch
}

func (d *UI) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
