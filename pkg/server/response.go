package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/remote"
	"tableflip.dev/todo/pkg/store"
)

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	env := remote.Envelope{Status: status, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Encoding error: "+err.Error())
			return
		}
		env.Data = raw
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(remote.Envelope{Message: message})
}

// statusFor maps service errors onto a status code and client message.
func statusFor(err error) (int, string) {
	var verr *item.ValidationError
	switch {
	case errors.As(err, &verr):
		if verr.Field == "title" {
			return http.StatusBadRequest, "Title field is required."
		}
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Todo not found."
	case errors.Is(err, store.ErrInvalidPosition):
		return http.StatusBadRequest, "Invalid position."
	default:
		return http.StatusInternalServerError, "Database error: " + err.Error()
	}
}
