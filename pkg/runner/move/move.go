// Package move provides the runner for reordering todos.
package move

import (
	"context"
	"fmt"

	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/reorder"
	"tableflip.dev/todo/pkg/runner/session"
)

// Move places a todo at Position, or where Over currently sits when Over
// is set, the same way dropping it there in the ui would.
type Move struct {
	session.Session
	Ref      string
	Position int
	Over     string
}

func (n *Move) Do(ctx context.Context) error {
	items, err := n.Load(ctx)
	if err != nil {
		return err
	}
	it, err := item.Resolve(items, n.Ref)
	if err != nil {
		return err
	}

	gesture := reorder.Gesture{ID: it.ID, Index: n.Position}
	if n.Over != "" {
		over, err := item.Resolve(items, n.Over)
		if err != nil {
			return err
		}
		var drag reorder.Drag
		drag.Start(it.ID, n.Engine.Cache().Version())
		g, ok := drag.Drop(items, over.ID)
		if !ok {
			return fmt.Errorf("can not move %q over itself", n.Ref)
		}
		gesture = g
	}

	p, err := n.Engine.Commit(ctx, gesture)
	if err != nil {
		return err
	}
	if err := n.Settle(ctx, p); err != nil {
		return err
	}
	return n.Show()
}
