package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/phrazzld/tasknest-api/internal/mocks"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, n events.TaskNotification) amqp.Delivery {
	t.Helper()
	body, err := n.Marshal()
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: body}
}

func TestConsumer_HandleDelivery(t *testing.T) {
	log, _ := logger.NewTestLogger()

	t.Run("ack on success", func(t *testing.T) {
		n := sampleNotification()
		handler := &mocks.TestifyMockHandler{}
		handler.On("HandleNotification", mock.Anything, n).Return(nil).Once()
		ack := &fakeAcknowledger{}

		c := NewConsumer(nil, "notifications", handler, log)
		c.handleDelivery(context.Background(), delivery(t, ack, 7, n))

		handler.AssertExpectations(t)
		assert.Equal(t, []uint64{7}, ack.acked)
		assert.Empty(t, ack.nacked)
	})

	t.Run("requeue on handler error", func(t *testing.T) {
		n := sampleNotification()
		handler := &mocks.TestifyMockHandler{}
		handler.On("HandleNotification", mock.Anything, n).Return(errors.New("redis down")).Once()
		ack := &fakeAcknowledger{}

		c := NewConsumer(nil, "notifications", handler, log)
		c.handleDelivery(context.Background(), delivery(t, ack, 8, n))

		handler.AssertExpectations(t)
		assert.Empty(t, ack.acked)
		assert.Equal(t, []uint64{8}, ack.nacked)
		assert.Equal(t, []bool{true}, ack.requeue)
	})

	t.Run("requeue on undecodable body", func(t *testing.T) {
		handler := &mocks.TestifyMockHandler{}
		ack := &fakeAcknowledger{}

		c := NewConsumer(nil, "notifications", handler, log)
		c.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, DeliveryTag: 9, Body: []byte("{not json")})

		handler.AssertNotCalled(t, "HandleNotification", mock.Anything, mock.Anything)
		assert.Equal(t, []uint64{9}, ack.nacked)
		assert.Equal(t, []bool{true}, ack.requeue)
	})
}

func TestConsumer_Run(t *testing.T) {
	log, _ := logger.NewTestLogger()
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery, 2)}
	conn := &fakeConn{ch: ch}
	ack := &fakeAcknowledger{}

	handled := make(chan events.TaskNotification, 2)
	handler := events.HandlerFunc(func(ctx context.Context, n events.TaskNotification) error {
		handled <- n
		return nil
	})

	n := sampleNotification()
	ch.deliveries <- delivery(t, ack, 1, n)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewConsumer(conn, "notifications", handler, log).Run(ctx) }()

	select {
	case got := <-handled:
		assert.Equal(t, n, got)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not handled")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}

	assert.Equal(t, []string{"notifications"}, ch.declared)
	assert.Equal(t, 1, ch.prefetch)
	assert.True(t, ch.closed)
	acked, _ := ack.counts()
	assert.Equal(t, 1, acked)
}

func TestConsumer_RunStopsWhenDeliveriesClose(t *testing.T) {
	log, _ := logger.NewTestLogger()
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery)}
	close(ch.deliveries)

	c := NewConsumer(&fakeConn{ch: ch}, "notifications", events.HandlerFunc(
		func(ctx context.Context, n events.TaskNotification) error { return nil }), log)

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, ErrDeliveriesClosed)
}
