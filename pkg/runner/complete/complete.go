// Package complete provides the runner logic for marking todos complete.
package complete

import (
	"context"

	"tableflip.dev/todo/pkg/runner/session"
)

// Complete marks a todo as completed, or open again with Undo.
type Complete struct {
	session.Session
	Ref  string
	Undo bool
}

// Do executes the completion operation for the referenced todo.
func (n *Complete) Do(ctx context.Context) error {
	it, err := n.Resolve(ctx, n.Ref)
	if err != nil {
		return err
	}
	if it.Completed != n.Undo {
		return n.Show()
	}
	p, err := n.Engine.Toggle(ctx, it.Toggled())
	if err != nil {
		return err
	}
	if err := n.Settle(ctx, p); err != nil {
		return err
	}
	return n.Show()
}
