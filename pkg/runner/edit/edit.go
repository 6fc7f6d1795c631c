// Package edit provides the runner for changing a todo's text.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/runner/session"
)

// Edit replaces the title and/or description of a todo. Nil fields are left
// alone.
type Edit struct {
	session.Session
	Ref         string
	Title       *string
	Description *string
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Title == nil && n.Description == nil {
		return errors.New("nothing to change, use --title or --description")
	}
	it, err := n.Resolve(ctx, n.Ref)
	if err != nil {
		return err
	}
	if n.Title != nil {
		it.Title = *n.Title
	}
	if n.Description != nil {
		it.Description = *n.Description
	}
	p, err := n.Engine.Update(ctx, it)
	if err != nil {
		return err
	}
	if err := n.Settle(ctx, p); err != nil {
		return err
	}
	if updated, ok := n.Engine.Cache().Find(it.ID); ok {
		return n.ShowItem(updated)
	}
	return n.Show()
}
