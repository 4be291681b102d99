package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasknest-api/internal/api/shared"
	"github.com/phrazzld/tasknest-api/internal/service"
)

// TaskHandler serves the caller's tasks. All routes require authentication.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	user, ok := currentUser(w, r, log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.Create(r.Context(), user, fields)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

// List handles GET /tasks/.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	tasks, err := h.tasks.List(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TasksResponse{Tasks: tasks})
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.Update(r.Context(), user, chi.URLParam(r, "id"), fields)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Message: "Task updated successfully",
		Task:    task,
	})
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithMessage(w, r, "Task deleted successfully")
}
