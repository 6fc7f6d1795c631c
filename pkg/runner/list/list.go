// Package list provides the runner for printing the todo list.
package list

import (
	"context"

	"tableflip.dev/todo/pkg/runner/session"
)

// List prints every todo in position order.
type List struct {
	session.Session
}

func (n *List) Do(ctx context.Context) error {
	if _, err := n.Load(ctx); err != nil {
		return err
	}
	return n.Show()
}
