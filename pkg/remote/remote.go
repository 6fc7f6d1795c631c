// Package remote holds the todo store HTTP contract and a client for it.
package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"tableflip.dev/todo/pkg/item"
)

// Store is the authoritative item store as seen by the mutation engine.
type Store interface {
	List(ctx context.Context) ([]item.Item, error)
	Create(ctx context.Context, draft item.Draft) (item.Item, error)
	Update(ctx context.Context, it item.Item) (item.Item, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, id string, position int) (item.Item, error)
}

// Envelope wraps every response body.
type Envelope struct {
	Status  int             `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ReorderRequest is the body of PUT /todos/reorder/{id}.
type ReorderRequest struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: unexpected status code: %d", e.Code)
	}
	return fmt.Sprintf("remote: unexpected status code: %d: %s", e.Code, e.Message)
}
