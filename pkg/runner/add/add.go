// Package add provides the runner for creating todos.
package add

import (
	"context"

	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/runner/session"
)

// Add appends a new todo to the end of the list.
type Add struct {
	session.Session
	Draft item.Draft
}

// Do creates the todo and prints the list once the server has it.
func (n *Add) Do(ctx context.Context) error {
	if _, err := n.Load(ctx); err != nil {
		return err
	}
	p, err := n.Engine.Create(ctx, n.Draft)
	if err != nil {
		return err
	}
	if err := n.Settle(ctx, p); err != nil {
		return err
	}
	return n.Show()
}
