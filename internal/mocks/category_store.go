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

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	CreateFn     func(ctx context.Context, category *domain.Category) error
	GetOwnedFn   func(ctx context.Context, id, userID uuid.UUID) (*domain.Category, error)
	GetByNameFn  func(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryStore creates an empty MockCategoryStore.
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// Create implements store.CategoryStore. Names are unique per owner.
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return store.ErrCategoryExists
		}
	}
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

// GetOwned implements store.CategoryStore.
func (m *MockCategoryStore) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Category, error) {
	if m.GetOwnedFn != nil {
		return m.GetOwnedFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[id]; ok && c.UserID == userID {
		out := *c
		return &out, nil
	}
	return nil, store.ErrCategoryNotFound
}

// GetByName implements store.CategoryStore.
func (m *MockCategoryStore) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, userID, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.UserID == userID && c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

// ListByUser implements store.CategoryStore.
func (m *MockCategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Category{}
	for _, c := range m.categories {
		if c.UserID == userID {
			cc := *c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// WithTx implements store.CategoryStore.
func (m *MockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return m
}

// owns reports whether categoryID exists and belongs to userID.
func (m *MockCategoryStore) owns(categoryID, userID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[categoryID]
	return ok && c.UserID == userID
}
