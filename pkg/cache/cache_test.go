package cache

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/item"
)

func TestReplaceNotifiesSubscribers(t *testing.T) {
	c := New("")
	first, stopFirst := c.Subscribe()
	defer stopFirst()
	second, stopSecond := c.Subscribe()
	defer stopSecond()

	version := c.Replace([]item.Item{{ID: "a", Title: "A"}}, events.ReasonOptimistic)
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}

	for _, ch := range []<-chan tea.Msg{first, second} {
		msg := receive(t, ch)
		replaced, ok := msg.(events.ListReplacedMsg)
		if !ok {
			t.Fatalf("expected ListReplacedMsg, got %T", msg)
		}
		if replaced.Component != "cache" || replaced.Reason != events.ReasonOptimistic || replaced.Count != 1 {
			t.Fatalf("unexpected message %+v", replaced)
		}
	}
}

func TestReadReturnsCopy(t *testing.T) {
	c := New("list")
	c.Replace([]item.Item{{ID: "a", Title: "A"}}, events.ReasonSeed)

	got := c.Read()
	got[0].Title = "changed"

	if again := c.Read(); again[0].Title != "A" {
		t.Fatalf("cache mutated through Read: %+v", again)
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	c := New("list")
	in := []item.Item{{ID: "a", Title: "A"}}
	c.Replace(in, events.ReasonSeed)
	in[0].Title = "changed"

	if got, _ := c.Find("a"); got.Title != "A" {
		t.Fatalf("cache aliased caller slice: %+v", got)
	}
}

func TestStaleBookkeeping(t *testing.T) {
	c := New("list")
	if !c.Stale() {
		t.Fatalf("new cache should be stale")
	}
	if !c.FetchedAt().IsZero() {
		t.Fatalf("new cache should have no fetch time")
	}

	c.Replace(nil, events.ReasonOptimistic)
	if !c.Stale() {
		t.Fatalf("optimistic replace must not clear staleness")
	}

	before := time.Now()
	c.Replace(nil, events.ReasonResync)
	if c.Stale() {
		t.Fatalf("resync should clear staleness")
	}
	if c.FetchedAt().Before(before) {
		t.Fatalf("fetch time not recorded")
	}

	c.MarkStale()
	if !c.Stale() {
		t.Fatalf("MarkStale did not flag the cache")
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	c := New("list")
	_, stop := c.Subscribe()
	defer stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			c.Replace(nil, events.ReasonOptimistic)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Replace blocked on a full subscriber")
	}
	if c.Version() != uint64(subscriberBuffer*2) {
		t.Fatalf("expected version %d, got %d", subscriberBuffer*2, c.Version())
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	c := New("list")
	ch, stop := c.Subscribe()
	stop()
	stop()

	if msg := Listen(ch)(); msg != (ClosedMsg{}) {
		t.Fatalf("expected ClosedMsg, got %T", msg)
	}
	c.Publish(events.MutationSettledMsg{})
}

func receive(t *testing.T, ch <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return nil
}
