package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasknest-api/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the delivery
// stream, typically because the connection dropped.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// prefetch limits unacknowledged deliveries to one at a time.
const prefetch = 1

// Consumer reads notifications from the queue and passes them to a handler.
// A message is acknowledged after the handler succeeds and requeued when
// the handler fails or the body cannot be decoded.
type Consumer struct {
	conn    Connection
	queue   string
	handler events.Handler
	logger  *slog.Logger
}

// NewConsumer creates a Consumer reading queue over conn.
func NewConsumer(conn Connection, queue string, handler events.Handler, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		conn:    conn,
		queue:   queue,
		handler: handler,
		logger:  logger.With(slog.String("component", "rabbitmq_consumer")),
	}
}

// Run consumes until ctx is done or the delivery stream closes.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %q: %w", c.queue, err)
	}

	c.logger.Info("waiting for notifications", slog.String("queue", c.queue))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handleDelivery(ctx, d)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, d amqp.Delivery) {
	n, err := events.UnmarshalTaskNotification(d.Body)
	if err != nil {
		c.logger.Error("failed to decode notification",
			slog.String("error", err.Error()),
			slog.Uint64("delivery_tag", d.DeliveryTag))
		c.nack(d)
		return
	}

	if err := c.handler.HandleNotification(ctx, n); err != nil {
		c.logger.Error("failed to process notification",
			slog.String("error", err.Error()),
			slog.String("task_id", n.TaskID.String()))
		c.nack(d)
		return
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error("failed to ack notification", slog.String("error", err.Error()))
		return
	}
	c.logger.Info("notification processed",
		slog.String("task_id", n.TaskID.String()),
		slog.String("user_id", n.UserID.String()))
}

func (c *Consumer) nack(d amqp.Delivery) {
	if err := d.Nack(false, true); err != nil {
		c.logger.Error("failed to nack notification", slog.String("error", err.Error()))
	}
}
