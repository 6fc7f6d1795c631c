package engine

import (
	"context"

	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/reorder"
)

// Create appends the draft under a temporary id and posts it. The server
// assigned id and position arrive with the next resync.
func (e *Engine) Create(ctx context.Context, draft item.Draft) (*Pending, error) {
	draft = draft.Normalize()
	if err := item.ValidateDraft(draft); err != nil {
		return nil, err
	}
	id := e.newID()
	return e.apply(ctx, events.ChangeCreate, id,
		func(current []item.Item) ([]item.Item, bool) {
			return append(current, item.Item{
				ID:          id,
				Title:       draft.Title,
				Description: draft.Description,
				Completed:   draft.Completed,
				Position:    len(current),
			}), true
		},
		func(ctx context.Context) error {
			_, err := e.remote.Create(ctx, draft)
			return err
		},
	)
}

// Update replaces the cached item with the same id and puts the full item.
func (e *Engine) Update(ctx context.Context, it item.Item) (*Pending, error) {
	return e.replace(ctx, events.ChangeUpdate, it)
}

// Toggle is Update for an item whose completed flag the caller flipped.
func (e *Engine) Toggle(ctx context.Context, it item.Item) (*Pending, error) {
	return e.replace(ctx, events.ChangeToggle, it)
}

func (e *Engine) replace(ctx context.Context, kind events.ChangeType, it item.Item) (*Pending, error) {
	it = it.Normalize()
	if err := item.ValidateItem(it); err != nil {
		return nil, err
	}
	return e.apply(ctx, kind, it.ID,
		func(current []item.Item) ([]item.Item, bool) {
			idx := item.IndexOf(current, it.ID)
			if idx < 0 {
				return current, false
			}
			// position only changes through Reorder
			next := it
			next.Position = current[idx].Position
			if current[idx] == next {
				return current, false
			}
			current[idx] = next
			return current, true
		},
		func(ctx context.Context) error {
			_, err := e.remote.Update(ctx, it)
			return err
		},
	)
}

// Delete removes the item with id.
func (e *Engine) Delete(ctx context.Context, id string) (*Pending, error) {
	if err := item.ValidateID(id); err != nil {
		return nil, err
	}
	return e.apply(ctx, events.ChangeDelete, id,
		func(current []item.Item) ([]item.Item, bool) {
			idx := item.IndexOf(current, id)
			if idx < 0 {
				return current, false
			}
			return append(current[:idx], current[idx+1:]...), true
		},
		func(ctx context.Context) error {
			return e.remote.Delete(ctx, id)
		},
	)
}

// Reorder moves the item with id to the post-removal index dest. Moving an
// unknown item, or to its current index, is a no-op with no dispatch.
func (e *Engine) Reorder(ctx context.Context, id string, dest int) (*Pending, error) {
	if err := item.ValidateID(id); err != nil {
		return nil, err
	}
	if err := item.ValidatePosition(dest); err != nil {
		return nil, err
	}
	var position int
	return e.apply(ctx, events.ChangeReorder, id,
		func(current []item.Item) ([]item.Item, bool) {
			res, ok := reorder.Move(current, id, dest)
			position = res.Position
			return res.Items, ok
		},
		func(ctx context.Context) error {
			_, err := e.remote.Reorder(ctx, id, position)
			return err
		},
	)
}

// Commit applies a finished drag gesture.
func (e *Engine) Commit(ctx context.Context, g reorder.Gesture) (*Pending, error) {
	return e.Reorder(ctx, g.ID, g.Index)
}
