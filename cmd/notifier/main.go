// Package main implements the notification consumer. It reads task
// notifications from the broker queue and keeps the most recent ones for
// each user in a Redis list.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasknest-api/internal/config"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/platform/rabbitmq"
	"github.com/phrazzld/tasknest-api/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("tasknest-notifier: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadNotifier()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			l.Error("Error closing redis client", "error", err)
		}
	}()
	inbox := redis.NewInbox(rdb, redis.WithSize(cfg.Redis.InboxSize), redis.WithLogger(l))

	conn, err := rabbitmq.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			l.Error("Error closing broker connection", "error", err)
		}
	}()

	l.Info("Notifier started",
		"queue", cfg.RabbitMQ.Queue,
		"redis_addr", cfg.Redis.Addr,
		"inbox_size", cfg.Redis.InboxSize)

	if err := rabbitmq.NewConsumer(conn, cfg.RabbitMQ.Queue, inbox, l).Run(ctx); err != nil {
		return fmt.Errorf("consumer stopped: %w", err)
	}

	l.Info("Notifier shutdown completed")
	return nil
}
