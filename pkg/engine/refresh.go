package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/item"
)

// ErrSuperseded is returned by Refresh when a local mutation or a newer read
// started while the list was being fetched, or when mutations are still in
// flight. The fetched list is discarded; the last settle resyncs again.
var ErrSuperseded = errors.New("engine: read superseded")

// ErrClosed is returned by verbs called after Close.
var ErrClosed = errors.New("engine: closed")

// Refresh reads the full list and replaces the cache with it, sorted by
// position. The read is cancelled by any optimistic apply that starts before
// it commits, and never overwrites the state of an in-flight mutation.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.cancelReadLocked()
	readCtx, cancel := context.WithCancel(ctx)
	e.readSeq++
	seq := e.readSeq
	generation := e.generation
	e.cancelRead = cancel
	e.mu.Unlock()
	defer cancel()

	items, err := e.remote.List(readCtx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readSeq == seq {
		e.cancelRead = nil
	}
	superseded := e.generation != generation || (readCtx.Err() != nil && ctx.Err() == nil)
	if superseded || len(e.pending) > 0 {
		e.logger.Debug("resync discarded", "generation", generation, "current", e.generation, "pending", len(e.pending))
		return ErrSuperseded
	}
	if err != nil {
		return fmt.Errorf("engine: list: %w", err)
	}
	item.SortByPosition(items)
	version := e.cache.Replace(items, events.ReasonResync)
	e.logger.Debug("resync", "count", len(items), "version", version)
	return nil
}

// Invalidate marks the cache stale and resyncs in the background. While
// other mutations are still in flight the resync is left to the last one to
// settle, so their optimistic state stays visible.
func (e *Engine) Invalidate() {
	e.cache.MarkStale()
	e.mu.Lock()
	inFlight := len(e.pending)
	e.mu.Unlock()
	if inFlight > 0 {
		e.logger.Debug("resync deferred", "pending", inFlight)
		return
	}
	e.refreshInBackground()
}

// Items returns the cached list. A stale or expired cache starts a
// background refresh unless a read or a mutation is already in flight.
func (e *Engine) Items(ctx context.Context) []item.Item {
	if e.needsRefresh() {
		e.mu.Lock()
		busy := e.cancelRead != nil || len(e.pending) > 0
		e.mu.Unlock()
		if !busy && ctx.Err() == nil {
			e.refreshInBackground()
		}
	}
	return e.cache.Read()
}

// Watch invalidates the cache for every signal on changes until ctx ends or
// changes is closed.
func (e *Engine) Watch(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			e.logger.Debug("remote change")
			e.Invalidate()
		}
	}
}

func (e *Engine) needsRefresh() bool {
	if e.cache.Stale() {
		return true
	}
	fetched := e.cache.FetchedAt()
	return fetched.IsZero() || time.Since(fetched) >= e.staleTime
}

func (e *Engine) refreshInBackground() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()
	go func() {
		defer e.wg.Done()
		if err := e.Refresh(e.ctx); err != nil && !errors.Is(err, ErrSuperseded) && e.ctx.Err() == nil {
			e.logger.Warn("resync failed", "err", err)
		}
	}()
}

func (e *Engine) cancelReadLocked() {
	if e.cancelRead != nil {
		e.cancelRead()
		e.cancelRead = nil
	}
}
