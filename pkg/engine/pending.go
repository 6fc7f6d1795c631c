package engine

import (
	"context"

	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/item"
)

// Pending is the record of one in-flight mutation. It lives from the
// optimistic apply until the remote call settles.
type Pending struct {
	ID     uint64
	Kind   events.ChangeType
	ItemID string
	// Snapshot is the cached list right before the optimistic apply.
	Snapshot []item.Item

	generation uint64
	done       chan struct{}
	err        error
}

func newPending(id uint64, kind events.ChangeType, itemID string, snapshot []item.Item, generation uint64) *Pending {
	return &Pending{
		ID:         id,
		Kind:       kind,
		ItemID:     itemID,
		Snapshot:   snapshot,
		generation: generation,
		done:       make(chan struct{}),
	}
}

// Done is closed once the remote call settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the remote failure, if any. Only meaningful after Done.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the mutation settled or ctx ends. A nil Pending, as
// returned for no-op verbs, is already settled.
func (p *Pending) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
