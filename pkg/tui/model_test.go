package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/todo/pkg/cache"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/glyph"
	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/reorder"
	"tableflip.dev/todo/pkg/remote"
)

type memStore struct {
	mu    sync.Mutex
	next  int
	items []item.Item
}

var _ remote.Store = (*memStore)(nil)

func newMemStore(titles ...string) *memStore {
	s := &memStore{}
	for _, title := range titles {
		s.add(title)
	}
	return s
}

func (s *memStore) add(title string) item.Item {
	s.next++
	it := item.Item{ID: string(rune('a' + s.next - 1)), Title: title, Position: len(s.items)}
	s.items = append(s.items, it)
	return it
}

func (s *memStore) List(context.Context) ([]item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return item.Clone(s.items), nil
}

func (s *memStore) Create(_ context.Context, d item.Draft) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(d.Title), nil
}

func (s *memStore) Update(_ context.Context, it item.Item) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := item.IndexOf(s.items, it.ID)
	if idx < 0 {
		return item.Item{}, &remote.StatusError{Code: 404}
	}
	it.Position = idx
	s.items[idx] = it
	return it, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := item.IndexOf(s.items, id)
	if idx < 0 {
		return &remote.StatusError{Code: 404}
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.renumber()
	return nil
}

func (s *memStore) Reorder(_ context.Context, id string, position int) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := reorder.Move(s.items, id, position)
	if ok {
		s.items = res.Items
		s.renumber()
	}
	return s.items[item.IndexOf(s.items, id)], nil
}

func (s *memStore) renumber() {
	for i := range s.items {
		s.items[i].Position = i
	}
}

func (s *memStore) titles() string {
	items, _ := s.List(context.Background())
	return titles(items)
}

func titles(items []item.Item) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return strings.Join(out, ",")
}

func newModel(t *testing.T, s remote.Store) (*Model, *engine.Engine) {
	t.Helper()
	e := engine.New(cache.New("tui"), s, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(e.Close)
	m := New(context.Background(), e)
	t.Cleanup(m.Close)
	m.Update(m.refresh()())
	return m, e
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "space":
			msg = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
		default:
			msg = tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
		}
		m.Update(msg)
	}
}

func TestLoadsList(t *testing.T) {
	m, _ := newModel(t, newMemStore("A", "B", "C"))
	if got := titles(m.items); got != "A,B,C" {
		t.Fatalf("expected A,B,C, got %s", got)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "Todo - 3") || !strings.Contains(view, "> "+glyph.Task.String()+" A") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestKeyboardDrag(t *testing.T) {
	s := newMemStore("A", "B", "C")
	m, e := newModel(t, s)

	press(m, "j", "j", "m")
	if id, ok := m.drag.Active(); !ok || id != "c" {
		t.Fatalf("expected C picked up, got %q %v", id, ok)
	}
	press(m, "k", "k")
	view := stripANSI(m.View())
	if !strings.Contains(view, glyph.DropTarget.String()+" "+glyph.Task.String()+" A") {
		t.Fatalf("drop target not on A:\n%s", view)
	}

	press(m, "enter")
	if got := titles(m.items); got != "C,A,B" {
		t.Fatalf("optimistic order: expected C,A,B, got %s", got)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should follow the dropped item, got %d", m.cursor)
	}
	e.Wait()
	if got := s.titles(); got != "C,A,B" {
		t.Fatalf("server order: expected C,A,B, got %s", got)
	}
}

func TestDropTargetFollowsItemAcrossResync(t *testing.T) {
	s := newMemStore("A", "B", "C", "D")
	m, e := newModel(t, s)

	press(m, "G", "m", "k", "k")
	if m.overID != "b" {
		t.Fatalf("expected target B, got %q", m.overID)
	}

	// another client removes A while D is being dragged
	if err := s.Delete(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	m.Update(m.refresh()())
	if got := titles(m.items); got != "B,C,D" {
		t.Fatalf("resync not applied, got %s", got)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, glyph.DropTarget.String()+" "+glyph.Task.String()+" B") {
		t.Fatalf("drop target left B:\n%s", view)
	}

	press(m, "enter")
	e.Wait()
	if got := s.titles(); got != "D,B,C" {
		t.Fatalf("expected D,B,C, got %s", got)
	}
}

func TestDropTargetRemovedMidDrag(t *testing.T) {
	s := newMemStore("A", "B", "C")
	m, e := newModel(t, s)

	press(m, "G", "m", "k")
	if err := s.Delete(context.Background(), "b"); err != nil {
		t.Fatal(err)
	}
	m.Update(m.refresh()())
	if _, ok := m.drag.Active(); !ok {
		t.Fatal("drag should survive losing its target")
	}
	if m.overID != "c" || m.status != "the drop target went away" {
		t.Fatalf("expected target to fall back to C, got %q (%s)", m.overID, m.status)
	}

	press(m, "k", "enter")
	e.Wait()
	if got := s.titles(); got != "C,A" {
		t.Fatalf("expected C,A, got %s", got)
	}
}

type gatedStore struct {
	*memStore
	gate chan struct{}
}

func (g *gatedStore) Update(ctx context.Context, it item.Item) (item.Item, error) {
	<-g.gate
	return g.memStore.Update(ctx, it)
}

func TestFooterShowsSyncingMutations(t *testing.T) {
	s := &gatedStore{memStore: newMemStore("A"), gate: make(chan struct{})}
	m, e := newModel(t, s)

	press(m, "space")
	view := stripANSI(m.View())
	if !strings.Contains(view, "1 syncing, resync on failure") {
		close(s.gate)
		t.Fatalf("footer should show the pending toggle:\n%s", view)
	}

	close(s.gate)
	e.Wait()
	if view := stripANSI(m.View()); strings.Contains(view, "syncing") {
		t.Fatalf("footer still shows syncing after settle:\n%s", view)
	}
}

func TestDragCancelAndSelfDrop(t *testing.T) {
	s := newMemStore("A", "B")
	m, e := newModel(t, s)

	press(m, "m", "esc")
	if _, ok := m.drag.Active(); ok {
		t.Fatal("esc should cancel the drag")
	}
	press(m, "m", "enter")
	e.Wait()
	if _, ok := m.drag.Active(); ok {
		t.Fatal("drop should end the drag")
	}
	if got := s.titles(); got != "A,B" {
		t.Fatalf("self drop must not reorder, got %s", got)
	}
}

func TestToggleAddEditDelete(t *testing.T) {
	s := newMemStore("A", "B")
	m, e := newModel(t, s)

	press(m, "space")
	if !m.items[0].Completed {
		t.Fatal("toggle not applied optimistically")
	}
	e.Wait()

	press(m, "a", "n", "e", "w", "enter")
	if got := titles(m.items); got != "A,B,new" {
		t.Fatalf("expected A,B,new, got %s", got)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor should land on the new item, got %d", m.cursor)
	}
	e.Wait()

	press(m, "g", "j", "e", "!", "enter")
	e.Wait()
	m.sync()
	if got := titles(m.items); got != "A,B!,new" {
		t.Fatalf("expected edited title, got %s", got)
	}

	press(m, "d")
	e.Wait()
	if got := s.titles(); got != "A,new" {
		t.Fatalf("expected B deleted on the server, got %s", got)
	}
	items, _ := s.List(context.Background())
	if !items[0].Completed {
		t.Fatal("toggle did not reach the server")
	}
}

func TestMoveKeys(t *testing.T) {
	s := newMemStore("A", "B", "C")
	m, e := newModel(t, s)

	press(m, "K")
	if got := titles(m.items); got != "A,B,C" {
		t.Fatalf("moving the first item up is a no-op, got %s", got)
	}
	press(m, "J")
	e.Wait()
	press(m, "J")
	e.Wait()
	if got := s.titles(); got != "B,C,A" {
		t.Fatalf("expected B,C,A, got %s", got)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor should follow, got %d", m.cursor)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
