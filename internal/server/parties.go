package server

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/party"
)

// PartyHandler serves parties and every party-scoped operation.
type PartyHandler struct {
	coord   *party.Coordinator
	resolve party.ResolveOpts
	logger  *log.Logger
}

// NewPartyHandler creates a [PartyHandler]. resolve holds the defaults for bulk link resolution.
func NewPartyHandler(coord *party.Coordinator, resolve party.ResolveOpts, logger *log.Logger) *PartyHandler {
	return &PartyHandler{coord: coord, resolve: resolve, logger: logger}
}

func (h *PartyHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/parties", h.list},
		{http.MethodPost, "/parties", h.create},
		{http.MethodGet, "/parties/{partyId}", h.get},
		{http.MethodPut, "/parties/{partyId}", h.update},
		{http.MethodDelete, "/parties/{partyId}", h.delete},
		{http.MethodGet, "/parties/{partyId}/plan", h.plan},
		{http.MethodGet, "/parties/{partyId}/score", h.score},
		{http.MethodPut, "/parties/{partyId}/users/{userId}", h.addMember},
		{http.MethodDelete, "/parties/{partyId}/users/{userId}", h.removeMember},
		{http.MethodGet, "/parties/{partyId}/locations", h.availableLocations},
		{http.MethodPut, "/parties/{partyId}/location/{locationId}", h.assignLocation},
		{http.MethodDelete, "/parties/{partyId}/location", h.removeLocation},
		{http.MethodGet, "/parties/{partyId}/songs", h.playlist},
		{http.MethodPost, "/parties/{partyId}/songs", h.addSong},
		{http.MethodPost, "/parties/{partyId}/songs/resolve", h.resolveLinks},
		{http.MethodDelete, "/parties/{partyId}/songs/{songId}", h.removeSong},
	}
}

func (h *PartyHandler) list(w http.ResponseWriter, r *http.Request) {
	parties, err := h.coord.ListParties(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, parties)
}

func (h *PartyHandler) create(w http.ResponseWriter, r *http.Request) {
	var spec party.PartySpec
	if err := decodeJSON(r, &spec); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.coord.CreateParty(r.Context(), spec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartyHandler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.coord.GetParty(r.Context(), r.PathValue("partyId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartyHandler) update(w http.ResponseWriter, r *http.Request) {
	var spec party.PartySpec
	if err := decodeJSON(r, &spec); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.coord.UpdateParty(r.Context(), r.PathValue("partyId"), spec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartyHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.coord.DeleteParty(r.Context(), r.PathValue("partyId")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PartyHandler) plan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.coord.Plan(r.Context(), r.PathValue("partyId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PartyHandler) score(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("partyId")
	points, err := h.coord.Score(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"partyId": id, "partyPoints": points})
}

func (h *PartyHandler) addMember(w http.ResponseWriter, r *http.Request) {
	p, err := h.coord.AddMember(r.Context(), r.PathValue("partyId"), r.PathValue("userId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartyHandler) removeMember(w http.ResponseWriter, r *http.Request) {
	p, err := h.coord.RemoveMember(r.Context(), r.PathValue("partyId"), r.PathValue("userId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartyHandler) availableLocations(w http.ResponseWriter, r *http.Request) {
	var (
		filter party.LocationFilter
		err    error
	)

	if filter.MinRating, err = floatParam(r, "minRating"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.MaxCost, err = floatParam(r, "maxCost"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.MinCapacity, err = intParam(r, "minCapacity"); err != nil {
		writeError(w, h.logger, err)
		return
	}

	locations, err := h.coord.AvailableLocations(r.Context(), r.PathValue("partyId"), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *PartyHandler) assignLocation(w http.ResponseWriter, r *http.Request) {
	p, err := h.coord.AssignLocation(r.Context(), r.PathValue("partyId"), r.PathValue("locationId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartyHandler) removeLocation(w http.ResponseWriter, r *http.Request) {
	p, err := h.coord.RemoveLocation(r.Context(), r.PathValue("partyId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartyHandler) playlist(w http.ResponseWriter, r *http.Request) {
	songs, err := h.coord.Playlist(r.Context(), r.PathValue("partyId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (h *PartyHandler) addSong(w http.ResponseWriter, r *http.Request) {
	var spec party.SongSpec
	if err := decodeJSON(r, &spec); err != nil {
		writeError(w, h.logger, err)
		return
	}

	song, err := h.coord.AddSong(r.Context(), r.PathValue("partyId"), spec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (h *PartyHandler) removeSong(w http.ResponseWriter, r *http.Request) {
	if err := h.coord.RemoveSong(r.Context(), r.PathValue("partyId"), r.PathValue("songId")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveLinks re-resolves every song without a link. ?workers= overrides the pool size.
func (h *PartyHandler) resolveLinks(w http.ResponseWriter, r *http.Request) {
	opts := h.resolve
	if raw := r.URL.Query().Get("workers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "workers must be an integer")
			return
		}
		opts.Workers = n
	}

	result, err := h.coord.ResolveMissingLinks(r.Context(), r.PathValue("partyId"), nil, opts)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
