// Package serve provides the runner for the todo HTTP server.
package serve

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/server"
	"tableflip.dev/todo/pkg/store"
)

// Serve runs the server on Listen until ctx is cancelled.
type Serve struct {
	Listen      string
	Persistence store.Persistence
	Logger      *slog.Logger
}

func (s *Serve) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not serve, no persistence")
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	svc := &app.Service{Persistence: s.Persistence}
	srv := server.New(svc, server.WithLogger(logger))
	logger.Info("serving todos", "listen", s.Listen)
	return srv.Run(ctx, s.Listen)
}
