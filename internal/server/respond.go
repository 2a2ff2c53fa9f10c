package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/shared"
)

type message struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Message: msg})
}

// notFoundMessages maps the most specific sentinel to its client-facing text. Order matters.
var notFoundMessages = []struct {
	err error
	msg string
}{
	{shared.ErrSongNotInPlaylist, "Song not found in playlist"},
	{shared.ErrTaskNotFound, "Task not found"},
	{shared.ErrPartyNotFound, "Party not found"},
	{shared.ErrLocationNotFound, "Location not found"},
	{shared.ErrUserNotFound, "User not found"},
	{shared.ErrSongNotFound, "Song not found"},
	{shared.ErrFoodNotFound, "Food not found"},
	{shared.ErrNotFound, "Not found"},
	{shared.ErrInvalidReference, "Not found"},
}

// writeError maps err onto a status code and a {"message": ...} body.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			writeMessage(w, http.StatusNotFound, nf.msg)
			return
		}
	}

	if errors.Is(err, shared.ErrInvalidInput) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Error("request failed", "error", err)
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

// floatParam parses an optional float query parameter. Absent parameters yield nil.
func floatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", shared.ErrInvalidInput, name)
	}
	return &v, nil
}

func intParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", shared.ErrInvalidInput, name)
	}
	return &v, nil
}
