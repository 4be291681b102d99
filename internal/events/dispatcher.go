package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/tasknest-api/internal/platform/logger"
)

// DefaultPublishTimeout bounds a publish attempt when none is configured.
const DefaultPublishTimeout = 5 * time.Second

// Dispatcher sends notifications on behalf of request handlers. It makes
// exactly one publish attempt per notification and never reports failure to
// the caller: a lost notification must not fail a committed write.
type Dispatcher struct {
	publisher Publisher
	timeout   time.Duration
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher. A non-positive timeout selects
// DefaultPublishTimeout.
func NewDispatcher(publisher Publisher, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		publisher: publisher,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "notification_dispatcher")),
	}
}

// Dispatch publishes n with a bounded timeout. The attempt outlives
// cancellation of ctx, since the write it reports has already committed.
func (d *Dispatcher) Dispatch(ctx context.Context, n TaskNotification) {
	log := logger.FromContextOrDefault(ctx, d.logger)

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	start := time.Now()
	if err := d.publisher.Publish(pubCtx, n); err != nil {
		log.Warn("failed to publish task notification",
			slog.String("error", err.Error()),
			slog.String("task_id", n.TaskID.String()),
			slog.String("user_id", n.UserID.String()),
			slog.Duration("elapsed", time.Since(start)))
		return
	}

	log.Debug("task notification published",
		slog.String("task_id", n.TaskID.String()),
		slog.Duration("elapsed", time.Since(start)))
}
