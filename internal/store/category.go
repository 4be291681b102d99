package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
)

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	// Create saves a new category.
	// Returns ErrCategoryExists if the owner already has a category with that name.
	Create(ctx context.Context, category *domain.Category) error

	// GetOwned retrieves a category by ID only if it belongs to userID.
	// Returns ErrCategoryNotFound otherwise.
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Category, error)

	// GetByName retrieves the owner's category with the given name.
	// Returns ErrCategoryNotFound if there is none.
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)

	// ListByUser returns all categories owned by userID, ordered by name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// WithTx returns a new CategoryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
