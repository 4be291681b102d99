package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryPublisher is a Publisher that delivers notifications synchronously
// to handlers registered in the same process. It serves local development
// without a broker.
type InMemoryPublisher struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

var _ Publisher = (*InMemoryPublisher)(nil)

// NewInMemoryPublisher creates a new instance of InMemoryPublisher.
func NewInMemoryPublisher(logger *slog.Logger) *InMemoryPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryPublisher{
		logger: logger.With("component", "in_memory_publisher"),
	}
}

// RegisterHandler adds a handler to receive notifications.
func (p *InMemoryPublisher) RegisterHandler(handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, handler)
	p.logger.Debug("registered notification handler", "handler_count", len(p.handlers))
}

// Publish delivers n to every registered handler. All handlers are called
// even if one fails; the first error is returned.
func (p *InMemoryPublisher) Publish(ctx context.Context, n TaskNotification) error {
	p.mu.RLock()
	handlers := make([]Handler, len(p.handlers))
	copy(handlers, p.handlers)
	p.mu.RUnlock()

	if len(handlers) == 0 {
		p.logger.Debug("no handlers registered for notification",
			"task_id", n.TaskID)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleNotification(ctx, n); err != nil {
			p.logger.Error("handler failed to process notification",
				"error", err,
				"handler_index", i,
				"task_id", n.TaskID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
