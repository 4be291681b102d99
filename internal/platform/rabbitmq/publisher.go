package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasknest-api/internal/config"
	"github.com/phrazzld/tasknest-api/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes task notifications to a durable queue on the default
// exchange. The connection is opened on first use and reopened after it
// closes. Publish calls are serialised, but waiting for the connection, for
// a dial in progress or for a publish slot is bounded by the caller's
// context.
type Publisher struct {
	url    string
	queue  string
	dial   DialFunc
	logger *slog.Logger

	// sem is a one-slot semaphore guarding the fields below.
	sem     chan struct{}
	conn    Connection
	ch      Channel
	pending chan dialResult
}

type dialResult struct {
	conn Connection
	err  error
}

var _ events.Publisher = (*Publisher)(nil)

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithDialer replaces the function used to open connections.
func WithDialer(dial DialFunc) PublisherOption {
	return func(p *Publisher) { p.dial = dial }
}

// NewPublisher creates a Publisher for cfg. No connection is made until the
// first Publish.
func NewPublisher(cfg config.RabbitMQConfig, logger *slog.Logger, opts ...PublisherOption) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Publisher{
		url:    cfg.URL,
		queue:  cfg.Queue,
		dial:   Dial,
		logger: logger.With(slog.String("component", "rabbitmq_publisher")),
		sem:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish implements events.Publisher. Any broker error drops the cached
// connection so the next call dials again.
func (p *Publisher) Publish(ctx context.Context, n events.TaskNotification) error {
	body, err := n.Marshal()
	if err != nil {
		return err
	}

	if err := p.acquire(ctx); err != nil {
		return err
	}
	defer p.release()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	if err := declareQueue(ch, p.queue); err != nil {
		p.reset()
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.TaskID.String(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("failed to publish to queue %q: %w", p.queue, err)
	}

	p.logger.Debug("notification published",
		slog.String("queue", p.queue),
		slog.String("task_id", n.TaskID.String()))
	return nil
}

// Close releases the broker connection, if any. A dial still in progress is
// closed once it completes.
func (p *Publisher) Close() error {
	p.sem <- struct{}{}
	defer p.release()

	p.reset()
	if p.pending != nil {
		go discardDial(p.pending)
		p.pending = nil
	}
	return nil
}

func (p *Publisher) acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publisher busy: %w", ctx.Err())
	}
}

func (p *Publisher) release() {
	<-p.sem
}

// channel returns the cached channel, dialling first when needed. The dial
// runs in its own goroutine; when ctx ends first the dial is left pending
// and the next caller picks up its result. Caller holds p.sem.
func (p *Publisher) channel(ctx context.Context) (Channel, error) {
	if p.conn == nil || p.conn.IsClosed() {
		p.reset()
		if p.pending == nil {
			pending := make(chan dialResult, 1)
			go func(url string) {
				conn, err := p.dial(url)
				pending <- dialResult{conn: conn, err: err}
			}(p.url)
			p.pending = pending
		}

		select {
		case res := <-p.pending:
			p.pending = nil
			if res.err != nil {
				return nil, res.err
			}
			p.conn = res.conn
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", ctx.Err())
		}
	}
	if p.ch == nil {
		ch, err := p.conn.Channel()
		if err != nil {
			p.reset()
			return nil, fmt.Errorf("failed to open channel: %w", err)
		}
		p.ch = ch
	}
	return p.ch, nil
}

// reset closes and forgets the channel and connection. Caller holds p.sem.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		if !p.conn.IsClosed() {
			_ = p.conn.Close()
		}
		p.conn = nil
	}
}

func discardDial(pending <-chan dialResult) {
	if res := <-pending; res.err == nil && res.conn != nil {
		_ = res.conn.Close()
	}
}
