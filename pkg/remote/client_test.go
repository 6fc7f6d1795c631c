package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tableflip.dev/todo/pkg/item"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(raw)})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, &calls
}

func writeData(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Envelope{Status: http.StatusOK, Data: raw})
}

func TestClientList(t *testing.T) {
	want := []item.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B", Position: 1}}
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, want)
	})

	got, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !item.Equal(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if (*calls)[0].method != http.MethodGet || (*calls)[0].path != "/todos" {
		t.Fatalf("unexpected call %+v", (*calls)[0])
	}
}

func TestClientRoutes(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, item.Item{ID: "a", Title: "A"})
	})
	ctx := context.Background()

	if _, err := c.Create(ctx, item.Draft{Title: "A"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := c.Update(ctx, item.Item{ID: "a", Title: "A", Completed: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Reorder(ctx, "a", 3); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	want := []recorded{
		{method: http.MethodPost, path: "/todos", body: `{"title":"A","completed":false}`},
		{method: http.MethodPut, path: "/todos/a", body: `{"id":"a","title":"A","completed":true,"position":0}`},
		{method: http.MethodDelete, path: "/todos/a"},
		{method: http.MethodPut, path: "/todos/reorder/a", body: `{"id":"a","position":3}`},
	}
	if len(*calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(*calls))
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Errorf("call %d: expected %+v, got %+v", i, want[i], (*calls)[i])
		}
	}
}

func TestClientStatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(Envelope{Message: "Todo not found"})
	})

	_, err := c.Update(context.Background(), item.Item{ID: "gone", Title: "x"})
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if serr.Code != http.StatusNotFound || serr.Message != "Todo not found" {
		t.Fatalf("unexpected error %+v", serr)
	}
}

func TestClientNonJSONFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	err := c.Delete(context.Background(), "a")
	var serr *StatusError
	if !errors.As(err, &serr) || serr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 StatusError, got %v", err)
	}
}

func TestClientCancelled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []item.Item{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, in := range []string{"", "ftp://example.com", "://bad"} {
		if _, err := NewClient(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}
