// Package engine applies todo mutations to the local cache optimistically,
// dispatches them to the remote store, and resynchronizes the cache once
// they settle.
//
// Every verb runs the same three phases:
//
//  1. optimistic apply: cancel any in-flight list read, snapshot the cache
//     into a Pending record, compute the new list and replace the cache.
//  2. remote dispatch, in its own goroutine.
//  3. settle: record the outcome, optionally roll back, then invalidate so
//     the next read resyncs with the server.
//
// The engine is the only writer of the cache.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/todo/pkg/cache"
	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/remote"
)

// Engine owns writes to a cache.Cache.
type Engine struct {
	cache     *cache.Cache
	remote    remote.Store
	policy    Policy
	logger    *slog.Logger
	staleTime time.Duration
	newID     func() string

	// ctx bounds background reads; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu sync.Mutex
	// generation bumps on every optimistic apply. A read only commits when
	// the generation it started from is still current.
	generation uint64
	readSeq    uint64
	cancelRead context.CancelFunc
	mutations  uint64
	pending    map[uint64]*Pending
	// closed stops new work from joining wg once Close is waiting on it.
	closed bool

	wg sync.WaitGroup
}

// New returns an engine writing to c and dispatching to store.
func New(c *cache.Cache, store remote.Store, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		cache:     c,
		remote:    store,
		policy:    PolicyResync,
		logger:    slog.Default(),
		staleTime: DefaultStaleTime,
		newID: func() string {
			return "tmp-" + uuid.NewString()
		},
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[uint64]*Pending),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cache returns the cache the engine writes to.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Policy returns the configured settle policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// InFlight returns the mutations that have not settled yet, oldest first.
func (e *Engine) InFlight() []*Pending {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Pending, 0, len(e.pending))
	for _, p := range e.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsPending reports whether a mutation targeting itemID is in flight.
func (e *Engine) IsPending(itemID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.pending {
		if p.ItemID == itemID {
			return true
		}
	}
	return false
}

// Wait blocks until every dispatch and resync started so far finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close stops background reads and waits for outstanding work. Verbs called
// afterwards fail with ErrClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cancel()
	e.wg.Wait()
}

type transform func(current []item.Item) ([]item.Item, bool)

type dispatch func(ctx context.Context) error

// apply runs the optimistic phase and starts the remote call. It returns a nil
// Pending when the transform reports a no-op.
func (e *Engine) apply(ctx context.Context, kind events.ChangeType, itemID string, fn transform, call dispatch) (*Pending, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	snapshot := e.cache.Read()
	next, ok := fn(item.Clone(snapshot))
	if !ok {
		e.mu.Unlock()
		e.logger.Debug("mutation skipped", "action", kind, "id", itemID)
		return nil, nil
	}

	e.cancelReadLocked()
	e.generation++
	e.mutations++
	p := newPending(e.mutations, kind, itemID, snapshot, e.generation)
	e.pending[p.ID] = p
	version := e.cache.Replace(next, events.ReasonOptimistic)
	e.wg.Add(1)
	e.mu.Unlock()

	e.logger.Debug("optimistic apply", "action", kind, "id", itemID, "mutation", p.ID, "version", version)

	go func() {
		defer e.wg.Done()
		err := call(ctx)
		e.settle(p, err)
	}()
	return p, nil
}

func (e *Engine) settle(p *Pending, err error) {
	e.mu.Lock()
	delete(e.pending, p.ID)
	p.err = err
	rolledBack := false
	if err != nil && e.policy == PolicyRollback && e.generation == p.generation {
		e.cache.Replace(p.Snapshot, events.ReasonRollback)
		rolledBack = true
	}
	e.mu.Unlock()
	close(p.done)

	if err != nil {
		e.logger.Warn("mutation failed", "action", p.Kind, "id", p.ItemID, "mutation", p.ID, "rollback", rolledBack, "err", err)
	} else {
		e.logger.Debug("mutation settled", "action", p.Kind, "id", p.ItemID, "mutation", p.ID)
	}
	e.cache.Publish(events.MutationSettledMsg{
		Component: e.cache.Component(),
		Mutation:  p.ID,
		Action:    p.Kind,
		ItemID:    p.ItemID,
		Err:       err,
	})
	e.Invalidate()
}
