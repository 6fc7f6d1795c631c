package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/cache"
	"tableflip.dev/todo/pkg/config"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/remote"
	"tableflip.dev/todo/pkg/runner/session"
)

// connection is everything a client command needs to talk to the server.
type connection struct {
	cfg    *config.Config
	logger *slog.Logger
	client *remote.Client
	engine *engine.Engine
}

func connect(cmd *cobra.Command) (*connection, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(os.Stderr)
	client, err := remote.NewClient(cfg.Server, remote.WithClientLogger(logger))
	if err != nil {
		return nil, err
	}
	policy, err := engine.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	e := engine.New(cache.New("cli"), client,
		engine.WithPolicy(policy),
		engine.WithStaleTime(cfg.StaleTime),
		engine.WithLogger(logger),
	)
	return &connection{cfg: cfg, logger: logger, client: client, engine: e}, nil
}

func (c *connection) Close() {
	c.engine.Close()
}

func (c *connection) session(showID bool, format string) session.Session {
	return session.Session{Engine: c.engine, ShowID: showID, Format: format}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
