package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
//
// When Categories is set, Create and Update reject a category_id that is not
// owned by the task's owner, as the composite foreign key does in PostgreSQL.
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetOwnedFn       func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	ListByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListByCategoryFn func(ctx context.Context, categoryID, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error

	Categories *MockCategoryStore

	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	seq   map[uuid.UUID]int
	next  int
}

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore(categories *MockCategoryStore) *MockTaskStore {
	return &MockTaskStore{
		Categories: categories,
		tasks:      make(map[uuid.UUID]*domain.Task),
		seq:        make(map[uuid.UUID]int),
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := m.checkCategory(task); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *task
	m.tasks[task.ID] = &stored
	m.next++
	m.seq[task.ID] = m.next
	return nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		out := *t
		return &out, nil
	}
	return nil, store.ErrTaskNotFound
}

// GetOwned implements store.TaskStore.
func (m *MockTaskStore) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.GetOwnedFn != nil {
		return m.GetOwnedFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok && t.UserID == userID {
		out := *t
		return &out, nil
	}
	return nil, store.ErrTaskNotFound
}

// ListByUser implements store.TaskStore.
func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return m.filter(func(t *domain.Task) bool { return t.UserID == userID }), nil
}

// ListByCategory implements store.TaskStore.
func (m *MockTaskStore) ListByCategory(ctx context.Context, categoryID, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, categoryID, userID)
	}
	return m.filter(func(t *domain.Task) bool {
		return t.UserID == userID && t.CategoryID != nil && *t.CategoryID == categoryID
	}), nil
}

// Update implements store.TaskStore. The stored owner is never changed.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := m.checkCategory(task); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	updated := *task
	updated.UserID = existing.UserID
	m.tasks[task.ID] = &updated
	return nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	delete(m.seq, id)
	return nil
}

// WithTx implements store.TaskStore.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Count returns the number of stored tasks.
func (m *MockTaskStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MockTaskStore) filter(keep func(*domain.Task) bool) []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*domain.Task{}
	for _, t := range m.tasks {
		if keep(t) {
			tt := *t
			out = append(out, &tt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.seq[out[i].ID] < m.seq[out[j].ID] })
	return out
}

func (m *MockTaskStore) checkCategory(task *domain.Task) error {
	if m.Categories == nil || task.CategoryID == nil {
		return nil
	}
	if !m.Categories.owns(*task.CategoryID, task.UserID) {
		return store.ErrCategoryNotFound
	}
	return nil
}
