package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasknest-api/internal/api/middleware"
	"github.com/phrazzld/tasknest-api/internal/api/shared"
	"github.com/phrazzld/tasknest-api/internal/service"
	"github.com/phrazzld/tasknest-api/internal/service/auth"
)

// RouterDeps are the services the HTTP API is built on.
type RouterDeps struct {
	Users      service.UserService
	Tasks      service.TaskService
	Categories service.CategoryService
	Identity   *auth.IdentityResolver
	Logger     *slog.Logger

	// Notifications enables GET /notifications/ when set.
	Notifications     NotificationReader
	NotificationLimit int
}

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTraceMiddleware(log))
	r.Use(chimiddleware.Recoverer)

	users := NewUserHandler(deps.Users, log)
	tasks := NewTaskHandler(deps.Tasks, log)
	categories := NewCategoryHandler(deps.Categories, log)
	authMiddleware := middleware.NewAuthMiddleware(deps.Identity)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithMessage(w, r, "API is working")
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/openapi.json", &OpenAPI{})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", users.Register)
		r.Post("/login", users.Login)
		r.Get("/{id}/tasks", users.ListTasks)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", tasks.Create)
			r.Get("/", tasks.List)
			r.Put("/{id}", tasks.Update)
			r.Delete("/{id}", tasks.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categories.Create)
			r.Get("/", categories.List)
			r.Get("/{id}/tasks", categories.ListTasks)
		})

		if deps.Notifications != nil {
			notifications := NewNotificationHandler(deps.Notifications, deps.NotificationLimit, log)
			r.Get("/notifications/", notifications.List)
		}
	})

	return r
}
