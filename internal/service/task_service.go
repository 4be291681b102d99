package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// categoryNotOwnedMessage is shown when a task names a category the caller
// does not own, and when listing tasks of such a category.
const categoryNotOwnedMessage = "Category not found or does not belong to the current user"

// Notifier hands a notification to the delivery path. It never fails from the
// caller's point of view.
type Notifier interface {
	Dispatch(ctx context.Context, n events.TaskNotification)
}

// TaskService provides task operations scoped to the calling user.
type TaskService interface {
	// Create validates and stores a task owned by user, then dispatches its notification.
	Create(ctx context.Context, user *domain.User, fields domain.TaskFields) (*domain.Task, error)

	// List returns user's tasks. Returns ErrNoTasks when there are none.
	List(ctx context.Context, user *domain.User) ([]*domain.Task, error)

	// Update applies fields to the task rawID. Another user's task is
	// reported as store.ErrTaskNotFound.
	Update(ctx context.Context, user *domain.User, rawID string, fields domain.TaskFields) (*domain.Task, error)

	// Delete removes the task rawID. Another user's task is reported as ErrNotOwned.
	Delete(ctx context.Context, user *domain.User, rawID string) error
}

// TaskServiceImpl implements TaskService.
type TaskServiceImpl struct {
	tasks      store.TaskStore
	categories store.CategoryStore
	tx         store.Transactor
	notifier   Notifier
	logger     *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	categories store.CategoryStore,
	tx store.Transactor,
	notifier Notifier,
	logger *slog.Logger,
) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:      tasks,
		categories: categories,
		tx:         tx,
		notifier:   notifier,
		logger:     logger.With("component", "task_service"),
	}
}

// Create stores a new task for user. The notification is dispatched only
// after the transaction commits.
func (s *TaskServiceImpl) Create(ctx context.Context, user *domain.User, fields domain.TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(user.ID, fields)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkCategory(ctx, tx, task); err != nil {
			return err
		}
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, s.mapWriteError("create", err)
	}

	log.Info("task created", "task_id", task.ID, "user_id", user.ID)
	s.notifier.Dispatch(ctx, events.NewTaskNotification(task))
	return task, nil
}

// List returns the caller's tasks.
func (s *TaskServiceImpl) List(ctx context.Context, user *domain.User) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	return tasks, nil
}

// Update looks the task up by id and owner together, validates, and writes
// the new values in one transaction.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	user *domain.User,
	rawID string,
	fields domain.TaskFields,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := domain.ParseID("id", rawID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Task
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := tasks.GetOwned(ctx, taskID, user.ID)
		if err != nil {
			return err
		}
		if err := task.ApplyUpdate(fields); err != nil {
			return err
		}
		if err := s.checkCategory(ctx, tx, task); err != nil {
			return err
		}
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, s.mapWriteError("update", err)
	}

	log.Info("task updated", "task_id", taskID, "user_id", user.ID)
	return updated, nil
}

// Delete removes a task. Existence is checked first, ownership second, so a
// task of another user is forbidden rather than not found.
func (s *TaskServiceImpl) Delete(ctx context.Context, user *domain.User, rawID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := domain.ParseID("id", rawID)
	if err != nil {
		return err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if !task.OwnedBy(user.ID) {
			log.Warn("attempt to delete another user's task",
				"task_id", taskID,
				"user_id", user.ID)
			return ErrNotOwned
		}
		return tasks.Delete(ctx, taskID)
	})
	if err != nil {
		return s.mapWriteError("delete", err)
	}

	log.Info("task deleted", "task_id", taskID, "user_id", user.ID)
	return nil
}

// checkCategory rejects a category_id the task's owner does not own.
func (s *TaskServiceImpl) checkCategory(ctx context.Context, tx *sql.Tx, task *domain.Task) error {
	if task.CategoryID == nil {
		return nil
	}
	_, err := s.categories.WithTx(tx).GetOwned(ctx, *task.CategoryID, task.UserID)
	return err
}

func (s *TaskServiceImpl) mapWriteError(op string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, ErrNotOwned):
		return err
	case errors.Is(err, store.ErrCategoryNotFound):
		return domain.NewValidationError("category_id", categoryNotOwnedMessage, domain.ErrValidation)
	}
	s.logger.Error("task operation failed", "operation", op, "error", err)
	return fmt.Errorf("failed to %s task: %w", op, err)
}
