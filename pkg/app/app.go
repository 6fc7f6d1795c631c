package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/store"
)

// Service provides the todo operations behind the HTTP server.
// It wraps persistence and input checks so the server and tests share logic.
type Service struct {
	Persistence store.Persistence
	// NewID assigns server ids; defaults to random UUIDs.
	NewID func() string
}

var ErrNoPersistence = errors.New("app: no persistence configured")

// List returns every todo ordered by position.
func (s *Service) List(ctx context.Context) ([]item.Item, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.List(ctx)
}

// Get returns the todo with the given id.
func (s *Service) Get(ctx context.Context, id string) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, ErrNoPersistence
	}
	id = strings.TrimSpace(id)
	if err := item.ValidateID(id); err != nil {
		return item.Item{}, err
	}
	return s.Persistence.Get(ctx, id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Create stores a new todo at the end of the list.
func (s *Service) Create(ctx context.Context, d item.Draft) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, ErrNoPersistence
	}
	d = d.Normalize()
	if err := item.ValidateDraft(d); err != nil {
		return item.Item{}, err
	}
	return s.Persistence.Create(ctx, item.Item{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
	})
}

// Update replaces the text and completion of the todo with the given id.
// The id in the path wins over the one in the body.
func (s *Service) Update(ctx context.Context, id string, it item.Item) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, ErrNoPersistence
	}
	it.ID = id
	it = it.Normalize()
	if err := item.ValidateID(it.ID); err != nil {
		return item.Item{}, err
	}
	if strings.TrimSpace(it.Title) == "" {
		return item.Item{}, &item.ValidationError{Field: "title", Message: "title is required"}
	}
	return s.Persistence.Update(ctx, it)
}

// Delete removes the todo with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	id = strings.TrimSpace(id)
	if err := item.ValidateID(id); err != nil {
		return err
	}
	return s.Persistence.Delete(ctx, id)
}

// Reorder moves the todo to position.
func (s *Service) Reorder(ctx context.Context, id string, position int) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, ErrNoPersistence
	}
	id = strings.TrimSpace(id)
	if err := item.ValidateID(id); err != nil {
		return item.Item{}, err
	}
	if err := item.ValidatePosition(position); err != nil {
		return item.Item{}, err
	}
	return s.Persistence.Reorder(ctx, id, position)
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
