// Package reorder computes list moves for drag gestures.
//
// Destination indexes use splice semantics: the moved item is removed first
// and then inserted at the destination index of the shortened list. Dropping
// onto the row currently at index N therefore lands the item at N.
package reorder

import (
	"tableflip.dev/todo/pkg/item"
)

// Result is the outcome of a move.
type Result struct {
	// Items is the new ordered sequence.
	Items []item.Item
	// Position is the rank to persist for the moved item.
	Position int
}

// Move relocates the item with id to dest. dest is clamped into
// [0, len(items)-1]. The moved item's Position is set to the persisted value;
// other items keep theirs since the slice order is what renders.
//
// When the id is unknown or the resolved destination equals the current
// index, Move returns the input slice unchanged and false.
func Move(items []item.Item, id string, dest int) (Result, bool) {
	from := item.IndexOf(items, id)
	if from < 0 {
		return Result{Items: items}, false
	}
	dest = Clamp(dest, len(items))
	if dest == from {
		return Result{Items: items, Position: dest}, false
	}

	moved := items[from]
	moved.Position = dest

	rest := make([]item.Item, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	out := make([]item.Item, 0, len(items))
	out = append(out, rest[:dest]...)
	out = append(out, moved)
	out = append(out, rest[dest:]...)

	return Result{Items: out, Position: dest}, true
}

// Clamp bounds dest to a valid index of a list of length n.
func Clamp(dest, n int) int {
	if dest < 0 || n == 0 {
		return 0
	}
	if dest > n-1 {
		return n - 1
	}
	return dest
}
