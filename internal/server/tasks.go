package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/party"
)

// TaskHandler serves the task resource.
type TaskHandler struct {
	engine *party.TaskEngine
	logger *log.Logger
}

func NewTaskHandler(engine *party.TaskEngine, logger *log.Logger) *TaskHandler {
	return &TaskHandler{engine: engine, logger: logger}
}

func (h *TaskHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/tasks", h.list},
		{http.MethodPost, "/tasks", h.create},
		{http.MethodGet, "/tasks/{id}", h.get},
		{http.MethodPut, "/tasks/{id}", h.update},
		{http.MethodDelete, "/tasks/{id}", h.delete},
		{http.MethodGet, "/tasks/party/{partyId}", h.forParty},
		{http.MethodGet, "/tasks/user/{userId}", h.forUser},
	}
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.engine.ListTasks(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var spec party.TaskSpec
	if err := decodeJSON(r, &spec); err != nil {
		writeError(w, h.logger, err)
		return
	}

	task, err := h.engine.CreateTask(r.Context(), spec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) get(w http.ResponseWriter, r *http.Request) {
	task, err := h.engine.GetTask(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	var spec party.TaskSpec
	if err := decodeJSON(r, &spec); err != nil {
		writeError(w, h.logger, err)
		return
	}

	task, err := h.engine.UpdateTask(r.Context(), r.PathValue("id"), spec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *TaskHandler) forParty(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.engine.TasksForParty(r.Context(), r.PathValue("partyId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) forUser(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.engine.TasksForUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
