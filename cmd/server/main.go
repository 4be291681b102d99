// Package main implements the entry point for the TaskNest API server,
// which manages users' tasks and categories and announces new tasks on a
// message queue.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasknest-api/internal/config"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/platform/postgres"
	"github.com/phrazzld/tasknest-api/internal/platform/redis"
)

func main() {
	migrate := flag.String("migrate", "", "Run a migration command (up|down|status|reset) and exit")
	flag.Parse()

	if err := run(*migrate); err != nil {
		log.Fatalf("tasknest: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until the process receives SIGINT/SIGTERM.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"queue", cfg.RabbitMQ.Queue)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				l.Error("Error closing database connection", "error", err)
			}
		}()
		return postgres.Migrate(ctx, db, migrateCmd, l)
	}

	// Apply pending migrations before serving.
	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
		_ = db.Close()
		return err
	}

	// Redis holds the notification inbox. Without it the server still runs,
	// unless notifications are delivered in process.
	var inbox *redis.Inbox
	rdb, err := redis.Open(ctx, cfg.Redis)
	switch {
	case err == nil:
		defer func() {
			if err := rdb.Close(); err != nil {
				l.Error("Error closing redis client", "error", err)
			}
		}()
		inbox = redis.NewInbox(rdb, redis.WithSize(cfg.Redis.InboxSize), redis.WithLogger(l))
	case cfg.Notifications.Transport == config.TransportMemory:
		_ = db.Close()
		return err
	default:
		l.Warn("Redis unavailable, notification inbox disabled", "error", err)
	}

	app, err := newApplication(cfg, l, db, inbox)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.serve(ctx)
}
