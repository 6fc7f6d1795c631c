package store

import (
	"tableflip.dev/todo/pkg/item"
)

// shift moves the item at from to to within a position ordered list,
// shifting the band between them by one. It returns the items whose position
// changed.
func shift(items []item.Item, from, to int) []item.Item {
	var changed []item.Item
	switch {
	case to > from:
		for i := range items {
			if p := items[i].Position; p > from && p <= to {
				items[i].Position--
				changed = append(changed, items[i])
			}
		}
	case to < from:
		for i := range items {
			if p := items[i].Position; p >= to && p < from {
				items[i].Position++
				changed = append(changed, items[i])
			}
		}
	}
	return changed
}

// compact renumbers items to 0..n-1 keeping their order, returning the
// items whose position changed.
func compact(items []item.Item) []item.Item {
	item.SortByPosition(items)
	var changed []item.Item
	for i := range items {
		if items[i].Position != i {
			items[i].Position = i
			changed = append(changed, items[i])
		}
	}
	return changed
}
