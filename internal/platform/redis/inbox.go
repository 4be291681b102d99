package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/config"
	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix namespaces inbox keys: <prefix>:<user_id>.
	DefaultKeyPrefix = "tasknest:notifications"
	// DefaultInboxSize is the number of notifications kept per user.
	DefaultInboxSize = 100

	pingTimeout = 2 * time.Second
)

// Open creates a client for cfg and pings it.
func Open(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// Inbox stores the most recent notifications of each user in a Redis list,
// newest first.
type Inbox struct {
	rdb    redis.Cmdable
	prefix string
	size   int64
	logger *slog.Logger
}

var _ events.Handler = (*Inbox)(nil)

// InboxOption configures an Inbox.
type InboxOption func(*Inbox)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) InboxOption {
	return func(i *Inbox) { i.prefix = strings.Trim(prefix, ":") }
}

// WithSize sets how many notifications are kept per user. Non-positive
// values select DefaultInboxSize.
func WithSize(size int) InboxOption {
	return func(i *Inbox) {
		if size > 0 {
			i.size = int64(size)
		}
	}
}

// WithLogger sets the inbox logger.
func WithLogger(logger *slog.Logger) InboxOption {
	return func(i *Inbox) { i.logger = logger }
}

// NewInbox creates an Inbox backed by rdb.
func NewInbox(rdb redis.Cmdable, opts ...InboxOption) *Inbox {
	i := &Inbox{
		rdb:    rdb,
		prefix: DefaultKeyPrefix,
		size:   DefaultInboxSize,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = i.logger.With(slog.String("component", "notification_inbox"))
	return i
}

// Key returns the list key holding userID's notifications.
func (i *Inbox) Key(userID uuid.UUID) string {
	return i.prefix + ":" + userID.String()
}

// HandleNotification implements events.Handler. The push and the trim run
// in one MULTI/EXEC block.
func (i *Inbox) HandleNotification(ctx context.Context, n events.TaskNotification) error {
	body, err := n.Marshal()
	if err != nil {
		return err
	}

	key := i.Key(n.UserID)
	pipe := i.rdb.TxPipeline()
	pipe.LPush(ctx, key, body)
	pipe.LTrim(ctx, key, 0, i.size-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store notification for user %s: %w", n.UserID, err)
	}

	i.logger.Debug("notification stored", slog.String("key", key), slog.String("task_id", n.TaskID.String()))
	return nil
}

// Recent returns up to limit notifications of userID, newest first.
// Entries that no longer decode are skipped.
func (i *Inbox) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]events.TaskNotification, error) {
	if limit <= 0 {
		return []events.TaskNotification{}, nil
	}

	raw, err := i.rdb.LRange(ctx, i.Key(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications for user %s: %w", userID, err)
	}

	out := make([]events.TaskNotification, 0, len(raw))
	for _, item := range raw {
		n, err := events.UnmarshalTaskNotification([]byte(item))
		if err != nil {
			i.logger.Warn("skipping malformed inbox entry", slog.String("error", err.Error()))
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
