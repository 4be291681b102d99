package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// CategoryService provides category operations scoped to the calling user.
type CategoryService interface {
	// Create adds a category for user. Returns store.ErrCategoryExists when
	// user already has one with that name.
	Create(ctx context.Context, user *domain.User, name string) (*domain.Category, error)

	// List returns user's categories. Returns ErrNoCategories when there are none.
	List(ctx context.Context, user *domain.User) ([]*domain.Category, error)

	// ListTasks returns a category of user together with its tasks.
	ListTasks(ctx context.Context, user *domain.User, rawID string) (*domain.Category, []*domain.Task, error)
}

// CategoryServiceImpl implements CategoryService.
type CategoryServiceImpl struct {
	categories store.CategoryStore
	tasks      store.TaskStore
	tx         store.Transactor
	logger     *slog.Logger
}

var _ CategoryService = (*CategoryServiceImpl)(nil)

// NewCategoryService creates a CategoryService.
func NewCategoryService(
	categories store.CategoryStore,
	tasks store.TaskStore,
	tx store.Transactor,
	logger *slog.Logger,
) *CategoryServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryServiceImpl{
		categories: categories,
		tasks:      tasks,
		tx:         tx,
		logger:     logger.With("component", "category_service"),
	}
}

// Create adds a category for user.
func (s *CategoryServiceImpl) Create(ctx context.Context, user *domain.User, name string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(user.ID, name)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		categories := s.categories.WithTx(tx)

		_, err := categories.GetByName(ctx, user.ID, name)
		switch {
		case err == nil:
			return store.ErrCategoryExists
		case !errors.Is(err, store.ErrCategoryNotFound):
			return fmt.Errorf("failed to check existing category: %w", err)
		}
		return categories.Create(ctx, category)
	})
	if err != nil {
		if errors.Is(err, store.ErrCategoryExists) {
			return nil, store.ErrCategoryExists
		}
		log.Error("failed to create category", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	log.Info("category created", "category_id", category.ID, "user_id", user.ID)
	return category, nil
}

// List returns the caller's categories.
func (s *CategoryServiceImpl) List(ctx context.Context, user *domain.User) ([]*domain.Category, error) {
	categories, err := s.categories.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}

// ListTasks returns the caller's category rawID and its tasks. The category
// lookup filters on owner, so another user's category is not found.
func (s *CategoryServiceImpl) ListTasks(
	ctx context.Context,
	user *domain.User,
	rawID string,
) (*domain.Category, []*domain.Task, error) {
	if strings.TrimSpace(rawID) == "" {
		return nil, nil, domain.NewValidationError("id", "Category ID is required", domain.ErrInvalidID)
	}
	categoryID, err := domain.ParseID("id", rawID)
	if err != nil {
		return nil, nil, err
	}

	category, err := s.categories.GetOwned(ctx, categoryID, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load category: %w", err)
	}

	tasks, err := s.tasks.ListByCategory(ctx, category.ID, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list category tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, nil, ErrNoCategoryTasks
	}
	return category, tasks, nil
}
