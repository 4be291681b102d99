package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/service"
	"github.com/phrazzld/tasknest-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.userSvc.Register(ctx, "a@x.io", "secret123"))

		u, err := f.users.GetByEmail(ctx, "a@x.io")
		require.NoError(t, err)
		assert.Equal(t, "hashed:secret123", u.HashedPassword)
		assert.NotEqual(t, uuid.Nil, u.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.userSvc.Register(ctx, "a@x.io", "secret123"))

		hashed := 0
		f.hasher.HashFn = func(password string) (string, error) {
			hashed++
			return "hashed:" + password, nil
		}

		err := f.userSvc.Register(ctx, "a@x.io", "another1")
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.Equal(t, 1, f.users.Count())
		assert.Zero(t, hashed, "an existing email is rejected before hashing")
	})

	t.Run("duplicate reported by the store", func(t *testing.T) {
		f := newFixture(t)
		f.users.CreateFn = func(ctx context.Context, user *domain.User) error {
			return fmt.Errorf("insert user: %w", store.ErrEmailExists)
		}

		err := f.userSvc.Register(ctx, "a@x.io", "secret123")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)

		cases := map[string]struct {
			email, password, message string
		}{
			"missing email":  {"", "secret123", "Email and password are required"},
			"short password": {"a@x.io", "12345", "Password must be at least 6 characters long"},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				err := f.userSvc.Register(ctx, tc.email, tc.password)
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tc.message, verr.Message)
			})
		}
		assert.Equal(t, 0, f.users.Count())
		assert.Equal(t, 0, f.tx.Calls())
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("connection reset")
		f.users.CreateFn = func(ctx context.Context, user *domain.User) error { return boom }

		err := f.userSvc.Register(ctx, "a@x.io", "secret123")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.addUser(t, "a@x.io")

	token, err := f.userSvc.Login(ctx, "a@x.io", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-"+u.ID.String(), token)

	_, err = f.userSvc.Login(ctx, "a@x.io", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = f.userSvc.Login(ctx, "nobody@x.io", "secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestUserService_ListUserTasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.addUser(t, "a@x.io")

	_, err := f.userSvc.ListUserTasks(ctx, u.ID.String())
	assert.ErrorIs(t, err, service.ErrNoUserTasks)
	assert.True(t, store.IsNotFoundError(err))

	first := f.addTask(t, u, "first")
	second := f.addTask(t, u, "second")

	tasks, err := f.userSvc.ListUserTasks(ctx, u.ID.String())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)

	_, err = f.userSvc.ListUserTasks(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = f.userSvc.ListUserTasks(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
