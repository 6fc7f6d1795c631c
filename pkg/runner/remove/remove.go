package remove

import (
	"context"

	"tableflip.dev/todo/pkg/runner/session"
)

type Remove struct {
	session.Session
	Ref string
}

func (n *Remove) Do(ctx context.Context) error {
	it, err := n.Resolve(ctx, n.Ref)
	if err != nil {
		return err
	}
	p, err := n.Engine.Delete(ctx, it.ID)
	if err != nil {
		return err
	}
	if err := n.Settle(ctx, p); err != nil {
		return err
	}
	return n.Show()
}
