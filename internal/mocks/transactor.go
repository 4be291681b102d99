package mocks

import (
	"context"
	"sync/atomic"

	"github.com/phrazzld/tasknest-api/internal/store"
)

// MockTransactor implements store.Transactor by running fn with a nil
// transaction. The in-memory store mocks ignore the transaction.
type MockTransactor struct {
	Err   error
	calls atomic.Int32
}

var _ store.Transactor = (*MockTransactor)(nil)

// RunInTransaction implements store.Transactor.
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.calls.Add(1)
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}

// Calls returns how many transactions were started.
func (m *MockTransactor) Calls() int {
	return int(m.calls.Load())
}
