package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasknest-api/internal/api"
	"github.com/phrazzld/tasknest-api/internal/config"
	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/phrazzld/tasknest-api/internal/platform/postgres"
	"github.com/phrazzld/tasknest-api/internal/platform/rabbitmq"
	"github.com/phrazzld/tasknest-api/internal/platform/redis"
	"github.com/phrazzld/tasknest-api/internal/service"
	"github.com/phrazzld/tasknest-api/internal/service/auth"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	taskStore     store.TaskStore
	categoryStore store.CategoryStore

	jwtService auth.JWTService
	publisher  events.Publisher
	broker     *rabbitmq.Publisher
	inbox      *redis.Inbox

	userService     service.UserService
	taskService     service.TaskService
	categoryService service.CategoryService

	router http.Handler
}

// newApplication creates a new application instance with all dependencies initialized.
// The broker connection is opened lazily on the first publish, so a missing
// broker does not prevent startup. inbox may be nil, in which case
// GET /notifications/ is not served and the memory transport is unavailable.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, inbox *redis.Inbox) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		inbox:  inbox,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	tx := store.NewDBTransactor(db)

	app.publisher, err = app.newPublisher()
	if err != nil {
		return nil, err
	}
	dispatcher := events.NewDispatcher(
		app.publisher,
		time.Duration(cfg.RabbitMQ.PublishTimeoutSeconds)*time.Second,
		logger,
	)

	app.userService = service.NewUserService(app.userStore, app.taskStore, hasher, app.jwtService, tx, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.categoryStore, tx, dispatcher, logger)
	app.categoryService = service.NewCategoryService(app.categoryStore, app.taskStore, tx, logger)

	deps := api.RouterDeps{
		Users:             app.userService,
		Tasks:             app.taskService,
		Categories:        app.categoryService,
		Identity:          auth.NewIdentityResolver(app.jwtService, app.userStore),
		Logger:            logger,
		NotificationLimit: cfg.Notifications.InboxLimit,
	}
	if inbox != nil {
		deps.Notifications = inbox
	}
	app.router = api.NewRouter(deps)

	logger.Info("Application initialized successfully")
	return app, nil
}

// newPublisher selects the notification transport. The memory transport
// writes notifications straight into the Redis inbox in this process.
func (app *application) newPublisher() (events.Publisher, error) {
	switch app.config.Notifications.Transport {
	case config.TransportMemory:
		if app.inbox == nil {
			return nil, fmt.Errorf("notification transport %q requires redis", config.TransportMemory)
		}
		mem := events.NewInMemoryPublisher(app.logger)
		mem.RegisterHandler(app.inbox)
		app.logger.Info("Delivering notifications in process", "transport", config.TransportMemory)
		return mem, nil
	case config.TransportRabbitMQ, "":
		app.broker = rabbitmq.NewPublisher(app.config.RabbitMQ, app.logger)
		return app.broker, nil
	default:
		return nil, fmt.Errorf("unknown notification transport %q", app.config.Notifications.Transport)
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.broker != nil {
		if err := app.broker.Close(); err != nil {
			app.logger.Error("Error closing broker connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
