package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasknest-api/internal/api/shared"
	"github.com/phrazzld/tasknest-api/internal/service"
)

// CategoryHandler serves the caller's categories.
type CategoryHandler struct {
	categories service.CategoryService
	logger     *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(categories service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_handler")),
	}
}

// Create handles POST /categories/.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	var req CategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	category, err := h.categories.Create(r.Context(), user, req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CategoryResponse{
		Message:  "Category created successfully",
		Category: category,
	})
}

// List handles GET /categories/.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	categories, err := h.categories.List(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CategoriesResponse{Categories: categories})
}

// ListTasks handles GET /categories/{id}/tasks.
func (h *CategoryHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	category, tasks, err := h.categories.ListTasks(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CategoryTasksResponse{
		Category: category.Name,
		Tasks:    tasks,
	})
}
