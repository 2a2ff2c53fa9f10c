package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
)

// Searcher resolves a media link, returning "" when nothing matched.
type Searcher interface {
	SearchMedia(ctx context.Context, title, artist string) string
}

// Pinger reports whether the record store is reachable. [*sql.DB] satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// MediaHandler exposes the media lookup directly.
type MediaHandler struct {
	search Searcher
	logger *log.Logger
}

func NewMediaHandler(search Searcher, logger *log.Logger) *MediaHandler {
	return &MediaHandler{search: search, logger: logger}
}

func (h *MediaHandler) Routes() []Route {
	return []Route{{http.MethodGet, "/media/search", h.searchLink}}
}

func (h *MediaHandler) searchLink(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	artist := r.URL.Query().Get("artist")
	if title == "" {
		writeMessage(w, http.StatusBadRequest, "title is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"title":  title,
		"artist": artist,
		"link":   h.search.SearchMedia(r.Context(), title, artist),
	})
}

// HealthHandler reports liveness and store reachability.
type HealthHandler struct {
	db     Pinger
	logger *log.Logger
}

func NewHealthHandler(db Pinger, logger *log.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) Routes() []Route {
	return []Route{{http.MethodGet, "/health", h.health}}
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
