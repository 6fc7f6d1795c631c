package item

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoMatch   = errors.New("no todo matches")
	ErrAmbiguous = errors.New("more than one todo matches")
)

// Resolve finds the item whose id equals ref, or failing that the single
// item whose id starts with ref. A ref of the form "#N" selects the item at
// index N, counting from 1.
func Resolve(items []Item, ref string) (Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Item{}, invalid("id", "id is required")
	}
	if strings.HasPrefix(ref, "#") {
		var n int
		if _, err := fmt.Sscanf(ref, "#%d", &n); err != nil || n < 1 || n > len(items) {
			return Item{}, fmt.Errorf("%w %q", ErrNoMatch, ref)
		}
		return items[n-1], nil
	}
	if idx := IndexOf(items, ref); idx >= 0 {
		return items[idx], nil
	}
	var found []Item
	for _, it := range items {
		if strings.HasPrefix(it.ID, ref) {
			found = append(found, it)
		}
	}
	switch len(found) {
	case 0:
		return Item{}, fmt.Errorf("%w %q", ErrNoMatch, ref)
	case 1:
		return found[0], nil
	default:
		return Item{}, fmt.Errorf("%w %q", ErrAmbiguous, ref)
	}
}
