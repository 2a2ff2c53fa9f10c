package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/catalog"
)

// CatalogHandler serves CRUD for users, locations, songs and foods.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *log.Logger
}

func NewCatalogHandler(c *catalog.Catalog, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, logger: logger}
}

func (h *CatalogHandler) Routes() []Route {
	c := h.catalog
	var routes []Route
	routes = append(routes, resource(h.logger, "/users", c.ListUsers, c.GetUser, c.CreateUser, c.UpdateUser, c.DeleteUser)...)
	routes = append(routes, resource(h.logger, "/locations", c.ListLocations, c.GetLocation, c.CreateLocation, c.UpdateLocation, c.DeleteLocation)...)
	routes = append(routes, resource(h.logger, "/songs", c.ListSongs, c.GetSong, c.CreateSong, c.UpdateSong, c.DeleteSong)...)
	routes = append(routes, resource(h.logger, "/foods", c.ListFoods, c.GetFood, c.CreateFood, c.UpdateFood, c.DeleteFood)...)
	return routes
}

// resource builds the five CRUD routes for a collection rooted at base.
func resource[S any, T any](
	logger *log.Logger,
	base string,
	list func(context.Context) ([]T, error),
	get func(context.Context, string) (T, error),
	create func(context.Context, S) (T, error),
	update func(context.Context, string, S) (T, error),
	remove func(context.Context, string) error,
) []Route {
	item := base + "/{id}"

	return []Route{
		{http.MethodGet, base, func(w http.ResponseWriter, r *http.Request) {
			items, err := list(r.Context())
			if err != nil {
				writeError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, items)
		}},
		{http.MethodGet, item, func(w http.ResponseWriter, r *http.Request) {
			v, err := get(r.Context(), r.PathValue("id"))
			if err != nil {
				writeError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, v)
		}},
		{http.MethodPost, base, func(w http.ResponseWriter, r *http.Request) {
			var spec S
			if err := decodeJSON(r, &spec); err != nil {
				writeError(w, logger, err)
				return
			}
			v, err := create(r.Context(), spec)
			if err != nil {
				writeError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, v)
		}},
		{http.MethodPut, item, func(w http.ResponseWriter, r *http.Request) {
			var spec S
			if err := decodeJSON(r, &spec); err != nil {
				writeError(w, logger, err)
				return
			}
			v, err := update(r.Context(), r.PathValue("id"), spec)
			if err != nil {
				writeError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, v)
		}},
		{http.MethodDelete, item, func(w http.ResponseWriter, r *http.Request) {
			if err := remove(r.Context(), r.PathValue("id")); err != nil {
				writeError(w, logger, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}},
	}
}
