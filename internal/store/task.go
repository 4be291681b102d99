package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Lookups come in two shapes. GetByID is a global lookup used where the
// caller checks ownership separately; GetOwned filters on id and owner in a
// single query, so a task owned by someone else is indistinguishable from a
// missing one.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrCategoryNotFound if the category does not exist for the task's owner.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID regardless of owner.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetOwned retrieves a task by ID only if it belongs to userID.
	// Returns ErrTaskNotFound otherwise.
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// ListByUser returns all tasks owned by userID, oldest first.
	// An empty slice is not an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByCategory returns the tasks filed under categoryID for userID.
	ListByCategory(ctx context.Context, categoryID, userID uuid.UUID) ([]*domain.Task, error)

	// Update overwrites a task's mutable fields.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
