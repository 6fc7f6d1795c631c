package reorder

import (
	"fmt"
	"testing"

	"tableflip.dev/todo/pkg/item"
)

func abc() []item.Item {
	return []item.Item{
		{ID: "A", Title: "A", Position: 0},
		{ID: "B", Title: "B", Position: 1},
		{ID: "C", Title: "C", Position: 2},
	}
}

func ids(items []item.Item) string {
	out := ""
	for _, it := range items {
		out += it.ID
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		dest     int
		want     string
		position int
	}{
		{name: "last to first", id: "C", dest: 0, want: "CAB", position: 0},
		{name: "first to last", id: "A", dest: 2, want: "BCA", position: 2},
		{name: "first to middle", id: "A", dest: 1, want: "BAC", position: 1},
		{name: "middle to first", id: "B", dest: 0, want: "BAC", position: 0},
		{name: "dest past end clamps", id: "A", dest: 10, want: "BCA", position: 2},
		{name: "negative dest clamps", id: "C", dest: -4, want: "CAB", position: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Move(abc(), tt.id, tt.dest)
			if !ok {
				t.Fatalf("expected a move")
			}
			if got := ids(res.Items); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if res.Position != tt.position {
				t.Fatalf("expected position %d, got %d", tt.position, res.Position)
			}
			if moved := res.Items[res.Position]; moved.ID != tt.id || moved.Position != tt.position {
				t.Fatalf("moved item not at persisted position: %+v", moved)
			}
		})
	}
}

func TestMoveNoop(t *testing.T) {
	in := abc()
	for _, tc := range []struct {
		id   string
		dest int
	}{
		{id: "missing", dest: 0},
		{id: "B", dest: 1},
		{id: "C", dest: 7},
	} {
		res, ok := Move(in, tc.id, tc.dest)
		if ok {
			t.Fatalf("%s->%d: expected no-op", tc.id, tc.dest)
		}
		if &res.Items[0] != &in[0] {
			t.Fatalf("%s->%d: expected input slice back", tc.id, tc.dest)
		}
	}
	if ids(in) != "ABC" || in[2].Position != 2 {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestMoveEmpty(t *testing.T) {
	if _, ok := Move(nil, "A", 0); ok {
		t.Fatalf("expected no-op on empty list")
	}
}

// Every valid pair keeps the identity set and lands the item at dest.
func TestMoveExhaustive(t *testing.T) {
	const n = 6
	for from := 0; from < n; from++ {
		for dest := 0; dest < n; dest++ {
			if from == dest {
				continue
			}
			items := make([]item.Item, n)
			for i := range items {
				items[i] = item.Item{ID: fmt.Sprintf("%d", i), Position: i}
			}
			id := items[from].ID
			res, ok := Move(items, id, dest)
			if !ok {
				t.Fatalf("%d->%d: expected move", from, dest)
			}
			if len(res.Items) != n {
				t.Fatalf("%d->%d: length %d", from, dest, len(res.Items))
			}
			seen := map[string]bool{}
			for _, it := range res.Items {
				seen[it.ID] = true
			}
			if len(seen) != n {
				t.Fatalf("%d->%d: identity set changed: %v", from, dest, seen)
			}
			if res.Items[dest].ID != id {
				t.Fatalf("%d->%d: item at %s", from, dest, res.Items[dest].ID)
			}
		}
	}
}

func TestDragDropOnTarget(t *testing.T) {
	var d Drag
	if !d.Start("C", 1) {
		t.Fatalf("expected drag to start")
	}
	g, ok := d.Drop(abc(), "A")
	if !ok {
		t.Fatalf("expected gesture")
	}
	if g != (Gesture{ID: "C", Index: 0}) {
		t.Fatalf("unexpected gesture %+v", g)
	}
	if _, active := d.Active(); active {
		t.Fatalf("drag should return to idle")
	}

	res, ok := Move(abc(), g.ID, g.Index)
	if !ok || ids(res.Items) != "CAB" || res.Position != 0 {
		t.Fatalf("unexpected move %s at %d", ids(res.Items), res.Position)
	}
}

func TestDragStartWhileActiveIgnored(t *testing.T) {
	var d Drag
	d.Start("A", 1)
	if d.Start("B", 2) {
		t.Fatalf("second start should be ignored")
	}
	if id, _ := d.Active(); id != "A" || d.Stale(1) {
		t.Fatalf("active drag replaced: %s", id)
	}
}

func TestDragDiscards(t *testing.T) {
	tests := []struct {
		name  string
		start string
		over  string
		items []item.Item
	}{
		{name: "drop on self", start: "B", over: "B", items: abc()},
		{name: "drop on nothing", start: "B", over: "", items: abc()},
		{name: "unknown target", start: "B", over: "Z", items: abc()},
		{name: "dragged item removed", start: "B", over: "A", items: abc()[:1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Drag
			d.Start(tt.start, 1)
			if _, ok := d.Drop(tt.items, tt.over); ok {
				t.Fatalf("expected discard")
			}
			if _, active := d.Active(); active {
				t.Fatalf("drag should return to idle")
			}
		})
	}
}

func TestDragAcrossReplacedList(t *testing.T) {
	var d Drag
	d.Start("A", 1)
	if !d.Stale(2) {
		t.Fatalf("expected stale generation")
	}
	d.Rebase(2)
	if d.Stale(2) {
		t.Fatalf("rebase should adopt the new generation")
	}
	// A was at 0 when the drag started; the list has since been reordered.
	current := []item.Item{{ID: "B"}, {ID: "C"}, {ID: "A"}}
	g, ok := d.Drop(current, "B")
	if !ok || g.Index != 0 || g.ID != "A" {
		t.Fatalf("unexpected gesture %+v %v", g, ok)
	}
}

func TestDragCancel(t *testing.T) {
	var d Drag
	d.Start("A", 1)
	d.Cancel()
	if _, ok := d.Drop(abc(), "C"); ok {
		t.Fatalf("drop after cancel should discard")
	}
	if !d.Start("B", 3) {
		t.Fatalf("should be able to start after cancel")
	}
}
