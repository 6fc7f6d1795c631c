package cache

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/item"
)

const subscriberBuffer = 64

// Cache holds the single ordered list of items the client renders. It mirrors
// the behavior of a Kubernetes-style informer cache: state lives locally,
// watchers subscribe to emitted events, and consumers read consistent copies
// without hitting the remote store.
//
// The mutation engine is the only writer. Readers get copies.
type Cache struct {
	component events.ComponentID

	mu        sync.RWMutex
	items     []item.Item
	version   uint64
	stale     bool
	fetchedAt time.Time

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan tea.Msg
}

// New creates an empty cache that will emit events using the provided
// ComponentID (falls back to "cache" if empty). A new cache is stale until
// the first resync.
func New(component events.ComponentID) *Cache {
	if component == "" {
		component = events.ComponentID("cache")
	}
	return &Cache{
		component: component,
		stale:     true,
		subs:      make(map[int]chan tea.Msg),
	}
}

// Component returns the id stamped on emitted events.
func (c *Cache) Component() events.ComponentID {
	return c.component
}

// Read returns a copy of the current ordered sequence.
func (c *Cache) Read() []item.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return item.Clone(c.items)
}

// Find returns the cached item with id.
func (c *Cache) Find(id string) (item.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := item.IndexOf(c.items, id); idx >= 0 {
		return c.items[idx], true
	}
	return item.Item{}, false
}

// Replace swaps the whole sequence in one step and notifies subscribers. No
// validation is performed. It returns the new version.
func (c *Cache) Replace(items []item.Item, reason events.Reason) uint64 {
	c.mu.Lock()
	c.items = item.Clone(items)
	c.version++
	if reason == events.ReasonResync {
		c.stale = false
		c.fetchedAt = time.Now()
	}
	msg := events.ListReplacedMsg{
		Component: c.component,
		Reason:    reason,
		Version:   c.version,
		Count:     len(c.items),
	}
	c.mu.Unlock()

	c.emit(msg)
	return msg.Version
}

// Version increments on every Replace.
func (c *Cache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// MarkStale flags the cached list as needing a resync.
func (c *Cache) MarkStale() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Stale reports whether the list was invalidated since the last resync.
func (c *Cache) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// FetchedAt returns the time of the last resync, zero if none happened.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Subscribe registers a listener. The returned func unregisters it and closes
// the channel. Notifications are dropped for subscribers that fall behind;
// Read always returns the latest state.
func (c *Cache) Subscribe() (<-chan tea.Msg, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextID
	c.nextID++
	ch := make(chan tea.Msg, subscriberBuffer)
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

// Publish relays msg to every subscriber.
func (c *Cache) Publish(msg tea.Msg) {
	c.emit(msg)
}

func (c *Cache) emit(msg tea.Msg) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
