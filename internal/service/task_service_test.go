package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/phrazzld/tasknest-api/internal/service"
	"github.com/phrazzld/tasknest-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes notification", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		due := time.Date(2026, 12, 1, 9, 30, 0, 0, time.UTC)

		task, err := f.taskSvc.Create(ctx, u, domain.TaskFields{
			Title:       "Write report",
			Description: strPtr("quarterly"),
			DueDate:     &due,
			Priority:    3,
		})
		require.NoError(t, err)
		assert.Equal(t, u.ID, task.UserID)
		assert.Equal(t, 1, f.tasks.Count())

		attempts := f.publisher.Attempts()
		require.Len(t, attempts, 1)
		assert.Equal(t, task.ID, attempts[0].TaskID)
		assert.Equal(t, u.ID, attempts[0].UserID)
		assert.Equal(t, "Task 'Write report' created successfully!", attempts[0].Message)
		assert.Equal(t, "2026-12-01T09:30:00Z", attempts[0].Timestamp)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		f.publisher.Err = errors.New("broker unreachable")

		task, err := f.taskSvc.Create(ctx, u, domain.TaskFields{Title: "t", Priority: 1})
		require.NoError(t, err)
		require.NotNil(t, task)
		assert.Len(t, f.publisher.Attempts(), 1)
		assert.Equal(t, 1, f.tasks.Count())
		assert.Contains(t, f.logs.String(), "failed to publish task notification")
	})

	t.Run("validation failure publishes nothing", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")

		_, err := f.taskSvc.Create(ctx, u, domain.TaskFields{Title: "t", Priority: 9})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Priority must be between 1 and 5", verr.Message)
		assert.Empty(t, f.publisher.Attempts())
		assert.Equal(t, 0, f.tasks.Count())
	})

	t.Run("foreign category rejected", func(t *testing.T) {
		f := newFixture(t)
		alice := f.addUser(t, "alice@x.io")
		bob := f.addUser(t, "bob@x.io")
		bobs := f.addCategory(t, bob, "Work")

		_, err := f.taskSvc.Create(ctx, alice, domain.TaskFields{
			Title:      "t",
			Priority:   1,
			CategoryID: &bobs.ID,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Category not found or does not belong to the current user", verr.Message)
		assert.Empty(t, f.publisher.Attempts())
	})

	t.Run("own category accepted", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		c := f.addCategory(t, u, "Work")

		task, err := f.taskSvc.Create(ctx, u, domain.TaskFields{Title: "t", Priority: 1, CategoryID: &c.ID})
		require.NoError(t, err)
		require.NotNil(t, task.CategoryID)
		assert.Equal(t, c.ID, *task.CategoryID)
	})

	t.Run("cancelled request still publishes", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		f.publisher.PublishFn = func(ctx context.Context, n events.TaskNotification) error {
			return ctx.Err()
		}
		reqCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := f.taskSvc.Create(reqCtx, u, domain.TaskFields{Title: "t", Priority: 1})
		require.NoError(t, err)
		assert.Len(t, f.publisher.Attempts(), 1)
		assert.NotContains(t, f.logs.String(), "failed to publish task notification")
	})
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser(t, "alice@x.io")
	bob := f.addUser(t, "bob@x.io")

	_, err := f.taskSvc.List(ctx, alice)
	assert.ErrorIs(t, err, service.ErrNoTasks)
	assert.ErrorIs(t, err, store.ErrNotFound)

	mine := f.addTask(t, alice, "mine")
	f.addTask(t, bob, "theirs")

	tasks, err := f.taskSvc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, mine.ID, tasks[0].ID)
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("priority is kept when omitted", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		task := f.addTask(t, u, "t")

		updated, err := f.taskSvc.Update(ctx, u, task.ID.String(), domain.TaskFields{Title: "t", Priority: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Priority)

		updated, err = f.taskSvc.Update(ctx, u, task.ID.String(), domain.TaskFields{Title: "t2", Status: true})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Priority)
		assert.Equal(t, "t2", updated.Title)
		assert.True(t, updated.Status)

		updated, err = f.taskSvc.Update(ctx, u, task.ID.String(), domain.TaskFields{Title: "t2", Priority: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Priority)

		stored, err := f.tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Priority)
		assert.Equal(t, u.ID, stored.UserID)
	})

	t.Run("other user's task is not found", func(t *testing.T) {
		f := newFixture(t)
		alice := f.addUser(t, "alice@x.io")
		bob := f.addUser(t, "bob@x.io")
		task := f.addTask(t, alice, "private")

		_, err := f.taskSvc.Update(ctx, bob, task.ID.String(), domain.TaskFields{Title: "hijacked", Priority: 1})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		stored, err := f.tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "private", stored.Title)
	})

	t.Run("unknown task", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")

		_, err := f.taskSvc.Update(ctx, u, uuid.NewString(), domain.TaskFields{Title: "t", Priority: 1})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")

		_, err := f.taskSvc.Update(ctx, u, "42", domain.TaskFields{Title: "t", Priority: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("foreign category rejected", func(t *testing.T) {
		f := newFixture(t)
		alice := f.addUser(t, "alice@x.io")
		bob := f.addUser(t, "bob@x.io")
		task := f.addTask(t, alice, "t")
		bobs := f.addCategory(t, bob, "Work")

		_, err := f.taskSvc.Update(ctx, alice, task.ID.String(), domain.TaskFields{
			Title:      "t",
			CategoryID: &bobs.ID,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "category_id", verr.Field)

		stored, err := f.tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.CategoryID)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		task := f.addTask(t, u, "t")

		_, err := f.taskSvc.Update(ctx, u, task.ID.String(), domain.TaskFields{Title: " "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		task := f.addTask(t, u, "t")

		require.NoError(t, f.taskSvc.Delete(ctx, u, task.ID.String()))
		assert.Equal(t, 0, f.tasks.Count())

		err := f.taskSvc.Delete(ctx, u, task.ID.String())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("other user's task is forbidden", func(t *testing.T) {
		f := newFixture(t)
		alice := f.addUser(t, "alice@x.io")
		bob := f.addUser(t, "bob@x.io")
		task := f.addTask(t, alice, "t")

		err := f.taskSvc.Delete(ctx, bob, task.ID.String())
		assert.ErrorIs(t, err, service.ErrNotOwned)
		assert.Equal(t, 1, f.tasks.Count())
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		task := f.addTask(t, u, "t")
		boom := errors.New("disk full")
		f.tasks.DeleteFn = func(ctx context.Context, id uuid.UUID) error { return boom }

		err := f.taskSvc.Delete(ctx, u, task.ID.String())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("transaction failure", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, "a@x.io")
		task := f.addTask(t, u, "t")
		f.tx.Err = store.ErrTransactionFailed

		err := f.taskSvc.Delete(ctx, u, task.ID.String())
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
		assert.Equal(t, 1, f.tasks.Count())
	})
}
