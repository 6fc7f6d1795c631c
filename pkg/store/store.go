package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/todo/pkg/item"
)

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("store: todo not found")
	// ErrInvalidPosition is returned for a reorder outside [0, n-1].
	ErrInvalidPosition = errors.New("store: invalid position")
)

// Persistence is the source of truth behind the todo server. Positions are
// kept dense: the list always holds positions 0..n-1.
type Persistence interface {
	// List returns every item ordered by position.
	List(ctx context.Context) ([]item.Item, error)
	Get(ctx context.Context, id string) (item.Item, error)
	// Create stores it at the end of the list. The caller assigns the id.
	Create(ctx context.Context, it item.Item) (item.Item, error)
	// Update replaces title, description and completed. Position only
	// changes through Reorder.
	Update(ctx context.Context, it item.Item) (item.Item, error)
	// Delete removes the item and closes the gap it leaves.
	Delete(ctx context.Context, id string) error
	// Reorder moves the item to position, shifting the items in between
	// by one.
	Reorder(ctx context.Context, id string, position int) (item.Item, error)
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Config selects and locates a backend.
type Config interface {
	Driver() string
	BasePath() string
}

const (
	DriverDiskv  = "diskv"
	DriverSQLite = "sqlite"
)

// Open creates the Persistence named by cfg.Driver().
func Open(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	if strings.TrimSpace(cfg.BasePath()) == "" {
		return nil, errors.New("store: base path required")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver())) {
	case "", DriverDiskv:
		return LoadDiskv(cfg.BasePath())
	case DriverSQLite:
		return OpenSQLite(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}
