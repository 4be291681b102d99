package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// PostgresCategoryStore implements store.CategoryStore on PostgreSQL.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a PostgresCategoryStore. If logger is nil,
// a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO categories (id, name, user_id)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, category.ID, category.Name, category.UserID)
	if err != nil {
		mapped := MapError(err)
		switch {
		case errors.Is(mapped, store.ErrCategoryExists):
			return store.ErrCategoryExists
		case errors.Is(mapped, store.ErrUserNotFound):
			return store.ErrUserNotFound
		}
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()),
			slog.String("user_id", category.UserID.String()))
		return store.NewStoreError("category", "create", "insert failed", mapped)
	}

	log.Info("category created successfully",
		slog.String("category_id", category.ID.String()),
		slog.String("user_id", category.UserID.String()))
	return nil
}

// GetOwned implements store.CategoryStore.GetOwned
func (s *PostgresCategoryStore) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, name, user_id
		FROM categories
		WHERE id = $1 AND user_id = $2
	`
	return s.getOne(ctx, query, id, userID)
}

// GetByName implements store.CategoryStore.GetByName
func (s *PostgresCategoryStore) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	query := `
		SELECT id, name, user_id
		FROM categories
		WHERE user_id = $1 AND name = $2
	`
	return s.getOne(ctx, query, userID, name)
}

func (s *PostgresCategoryStore) getOne(ctx context.Context, query string, args ...any) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get category",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "get", "query failed", err)
	}
	return &c, nil
}

// ListByUser implements store.CategoryStore.ListByUser
func (s *PostgresCategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, user_id
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list categories",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("category", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID); err != nil {
			return nil, store.NewStoreError("category", "list", "scan failed", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "list", "row iteration failed", err)
	}
	return categories, nil
}
