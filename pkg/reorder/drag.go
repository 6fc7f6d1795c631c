package reorder

import (
	"sync"

	"tableflip.dev/todo/pkg/item"
)

// Gesture is a committed drag: move ID to Index.
type Gesture struct {
	ID    string
	Index int
}

// Drag tracks a single drag gesture.
//
//	Idle -> Dragging(id, generation) -> Drop | Cancel -> Idle
//
// Only one drag is active at a time. The generation is the cache version the
// drag was last resolved against. Callers check Stale when the list is
// replaced, re-resolve their drop target by identity and then Rebase.
type Drag struct {
	mu         sync.Mutex
	active     string
	generation uint64
}

// Start begins dragging id. It returns false and leaves the current drag
// untouched when one is already active.
func (d *Drag) Start(id string, generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != "" || id == "" {
		return false
	}
	d.active = id
	d.generation = generation
	return true
}

// Active returns the dragged id.
func (d *Drag) Active() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active, d.active != ""
}

// Rebase moves the active drag onto generation. It is a no-op when idle.
func (d *Drag) Rebase(generation uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != "" {
		d.generation = generation
	}
}

// Stale reports whether the list changed since the drag started.
func (d *Drag) Stale(generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active != "" && d.generation != generation
}

// Cancel discards the active drag.
func (d *Drag) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Drop ends the drag over the row overID of items. Dropping on self, on an
// unknown row, or when the dragged item is gone discards the gesture.
func (d *Drag) Drop(items []item.Item, overID string) (Gesture, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	active := d.active
	d.reset()

	if active == "" || overID == "" || active == overID {
		return Gesture{}, false
	}
	if item.IndexOf(items, active) < 0 {
		return Gesture{}, false
	}
	over := item.IndexOf(items, overID)
	if over < 0 {
		return Gesture{}, false
	}
	return Gesture{ID: active, Index: over}, true
}

func (d *Drag) reset() {
	d.active = ""
	d.generation = 0
}
