package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/reorder"
	"tableflip.dev/todo/pkg/remote"
)

var errRemote = &remote.StatusError{Code: 500, Message: "boom"}

// fakeStore is an in-memory remote with dense positions and hooks to hold
// calls in flight.
type fakeStore struct {
	mu     sync.Mutex
	items  []item.Item
	calls  []string
	fail   map[string]error
	nextID int

	// listGate, when set, holds List after the snapshot is taken. The held
	// call ignores ctx, like a response already on the wire.
	listGate    chan struct{}
	listStarted chan struct{}
	// release, when set, holds every mutation until a value is received.
	release chan struct{}
}

func newFakeStore(titles ...string) *fakeStore {
	f := &fakeStore{
		fail:        map[string]error{},
		listStarted: make(chan struct{}, 16),
	}
	for i, title := range titles {
		f.items = append(f.items, item.Item{ID: title, Title: title, Position: i})
	}
	return f
}

func (f *fakeStore) snapshot() []item.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return item.Clone(f.items)
}

func (f *fakeStore) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) record(call string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	op := call
	for i := range call {
		if call[i] == ' ' {
			op = call[:i]
			break
		}
	}
	return f.fail[op]
}

func (f *fakeStore) List(ctx context.Context) ([]item.Item, error) {
	f.mu.Lock()
	out := item.Clone(f.items)
	gate := f.listGate
	f.mu.Unlock()
	select {
	case f.listStarted <- struct{}{}:
	default:
	}
	if gate != nil {
		<-gate
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	// the server does not promise any order on the wire
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, d item.Draft) (item.Item, error) {
	if err := f.record("create " + d.Title); err != nil {
		return item.Item{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	it := item.Item{ID: fmt.Sprintf("srv-%d", f.nextID), Title: d.Title, Description: d.Description, Completed: d.Completed, Position: len(f.items)}
	f.items = append(f.items, it)
	return it, nil
}

func (f *fakeStore) Update(_ context.Context, it item.Item) (item.Item, error) {
	if err := f.record("update " + it.ID); err != nil {
		return item.Item{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := item.IndexOf(f.items, it.ID)
	if idx < 0 {
		return item.Item{}, &remote.StatusError{Code: 404}
	}
	it.Position = f.items[idx].Position
	f.items[idx] = it
	return it, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if err := f.record("delete " + id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := item.IndexOf(f.items, id)
	if idx < 0 {
		return &remote.StatusError{Code: 404}
	}
	f.items = append(f.items[:idx], f.items[idx+1:]...)
	f.renumber()
	return nil
}

func (f *fakeStore) Reorder(_ context.Context, id string, position int) (item.Item, error) {
	if err := f.record(fmt.Sprintf("reorder %s %d", id, position)); err != nil {
		return item.Item{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	res, _ := reorder.Move(f.items, id, position)
	f.items = res.Items
	f.renumber()
	return f.items[res.Position], nil
}

func (f *fakeStore) renumber() {
	for i := range f.items {
		f.items[i].Position = i
	}
}

func (f *fakeStore) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeStore) hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release = make(chan struct{})
}

func (f *fakeStore) releaseOne() {
	f.release <- struct{}{}
}

func (f *fakeStore) releaseAll() {
	f.mu.Lock()
	release := f.release
	f.release = nil
	f.mu.Unlock()
	if release != nil {
		close(release)
	}
}

func (f *fakeStore) holdList() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listGate = make(chan struct{})
}

func (f *fakeStore) openList() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listGate != nil {
		close(f.listGate)
		f.listGate = nil
	}
}

func (f *fakeStore) mutate(fn func(items []item.Item) []item.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = fn(f.items)
}

func waitDone(t *testing.T, p *Pending) {
	t.Helper()
	if p == nil {
		t.Fatalf("expected a pending mutation")
	}
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("mutation %d did not settle", p.ID)
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met")
}

func isSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
