package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockPublisher implements events.Publisher and records every attempt,
// successful or not.
type MockPublisher struct {
	PublishFn func(ctx context.Context, n events.TaskNotification) error
	Err       error

	mu       sync.Mutex
	attempts []events.TaskNotification
}

var _ events.Publisher = (*MockPublisher)(nil)

// Publish implements events.Publisher.
func (m *MockPublisher) Publish(ctx context.Context, n events.TaskNotification) error {
	m.mu.Lock()
	m.attempts = append(m.attempts, n)
	m.mu.Unlock()

	if m.PublishFn != nil {
		return m.PublishFn(ctx, n)
	}
	return m.Err
}

// Attempts returns a copy of all notifications passed to Publish.
func (m *MockPublisher) Attempts() []events.TaskNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.TaskNotification, len(m.attempts))
	copy(out, m.attempts)
	return out
}

// TestifyMockHandler is a mock of events.Handler for use with testify/mock
type TestifyMockHandler struct {
	mock.Mock
}

var _ events.Handler = (*TestifyMockHandler)(nil)

// HandleNotification is a mock implementation of events.Handler.HandleNotification
func (m *TestifyMockHandler) HandleNotification(ctx context.Context, n events.TaskNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
