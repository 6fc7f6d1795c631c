// Package session is the client side shared by the one-shot CLI runners: it
// loads the list through the engine, resolves item references and prints the
// result of a change.
package session

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/printers"
)

// Session wraps an engine for a single command.
type Session struct {
	Engine *engine.Engine
	ShowID bool
	// Format selects structured output; empty means pretty printed.
	Format string
	Out    io.Writer
}

// Load reads the list from the server.
func (s *Session) Load(ctx context.Context) ([]item.Item, error) {
	if s.Engine == nil {
		return nil, errors.New("no connection to a todo server")
	}
	if err := s.Engine.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.Engine.Cache().Read(), nil
}

// Resolve loads the list and finds the item ref points at.
func (s *Session) Resolve(ctx context.Context, ref string) (item.Item, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return item.Item{}, err
	}
	return item.Resolve(items, ref)
}

// Settle waits for p and the resync that follows it.
func (s *Session) Settle(ctx context.Context, p *engine.Pending) error {
	if err := p.Wait(ctx); err != nil {
		return err
	}
	s.Engine.Wait()
	return nil
}

// Show prints the cached list.
func (s *Session) Show() error {
	items := s.Engine.Cache().Read()
	if s.Format != "" {
		return printers.Structured(s.out(), s.Format, items)
	}
	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}
	pp.NewLine()
	pp.TitleWithCount("Todo", len(items))
	pp.List(items...)
	return nil
}

// ShowItem prints one item.
func (s *Session) ShowItem(it item.Item) error {
	if s.Format != "" {
		return printers.Structured(s.out(), s.Format, it)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: s.Out}
	pp.Item(it)
	return nil
}

func (s *Session) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return color.Output
}
