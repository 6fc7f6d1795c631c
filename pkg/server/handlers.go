package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/remote"
)

const maxBody = 1 << 20

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "url", r.URL, "err", err)
	}
	writeError(w, status, message)
}

func decode(r *http.Request, into any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(into)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "ok", nil)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Todos retrieved.", items)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	it, err := s.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Todo retrieved.", it)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var draft item.Draft
	if err := decode(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format.")
		return
	}
	it, err := s.svc.Create(r.Context(), draft)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Todo created.", it)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var body item.Item
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format.")
		return
	}
	it, err := s.svc.Update(r.Context(), mux.Vars(r)["id"], body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Todo updated.", it)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Todo deleted.", id)
}

func (s *Server) reorder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Position *int `json:"position"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format.")
		return
	}
	if body.Position == nil {
		writeError(w, http.StatusBadRequest, "Missing 'position' field")
		return
	}
	it, err := s.svc.Reorder(r.Context(), mux.Vars(r)["id"], *body.Position)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Todo reordered.", it)
}

// watch streams one remote.Change per persistence event until either side
// hangs up.
func (s *Server) watch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, err := s.svc.Watch(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Debug("watch upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Reads only surface control frames; any error means the peer is gone.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(time.Second))
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(remote.Change{Action: ev.Type.String(), ID: ev.ID}); err != nil {
				s.logger.Debug("watch write failed", "err", err)
				return
			}
		}
	}
}
