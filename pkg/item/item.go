// Package item holds the todo data model shared by the client engine, the
// remote contract and the server.
package item

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/todo/pkg/glyph"
)

// Item is a single todo. Position is the persisted rank; the order of a
// []Item is what drives rendering.
type Item struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Position    int    `json:"position" yaml:"position"`
}

// Draft is the payload used to create an item. The store assigns identity
// and position.
type Draft struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// New returns a Draft for the given title.
func New(title, description string) Draft {
	return Draft{
		Title:       title,
		Description: description,
	}
}

// Bullet maps the completion state onto a display glyph.
func (i Item) Bullet() glyph.Bullet {
	if i.Completed {
		return glyph.Completed
	}
	return glyph.Task
}

// Toggled returns a copy with Completed flipped.
func (i Item) Toggled() Item {
	i.Completed = !i.Completed
	return i
}

func (i Item) String() string {
	return fmt.Sprintf("%s  %s", i.Bullet().String(), i.Title)
}

// Row is used by table printers.
func (i Item) Row() (string, string, string) {
	return fmt.Sprintf("%d", i.Position), i.Bullet().String(), i.Title
}

// Normalize trims whitespace around user supplied text.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Normalize trims whitespace around user supplied text.
func (i Item) Normalize() Item {
	i.ID = strings.TrimSpace(i.ID)
	i.Title = strings.TrimSpace(i.Title)
	i.Description = strings.TrimSpace(i.Description)
	return i
}

// Clone copies a sequence so callers can mutate it freely.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// IndexOf returns the index of the item with id, or -1.
func IndexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// SortByPosition orders items by position, then id, in place.
func SortByPosition(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Position == items[j].Position {
			return items[i].ID < items[j].ID
		}
		return items[i].Position < items[j].Position
	})
}

// Equal reports whether two sequences hold the same items in the same order.
func Equal(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
