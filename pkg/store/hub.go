package store

import (
	"context"
	"sync"
)

// hub fans change events out to in-process watchers.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan Event)}
}

func (h *hub) watch(ctx context.Context) <-chan Event {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, 64)
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}()
	return ch
}

func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
