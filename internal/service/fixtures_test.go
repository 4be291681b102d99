package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/phrazzld/tasknest-api/internal/mocks"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/service"
	"github.com/stretchr/testify/require"
)

// fixture wires the services over the in-memory stores.
type fixture struct {
	users      *mocks.MockUserStore
	categories *mocks.MockCategoryStore
	tasks      *mocks.MockTaskStore
	publisher  *mocks.MockPublisher
	hasher     *mocks.MockPasswordHasher
	tx         *mocks.MockTransactor
	logs       *logger.TestLogBuffer

	userSvc     *service.UserServiceImpl
	taskSvc     *service.TaskServiceImpl
	categorySvc *service.CategoryServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, buf := logger.NewTestLogger()
	f := &fixture{
		users:      mocks.NewMockUserStore(),
		categories: mocks.NewMockCategoryStore(),
		publisher:  &mocks.MockPublisher{},
		hasher:     &mocks.MockPasswordHasher{},
		tx:         &mocks.MockTransactor{},
		logs:       buf,
	}
	f.tasks = mocks.NewMockTaskStore(f.categories)

	tokens := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return "token-" + userID.String(), nil
		},
	}
	dispatcher := events.NewDispatcher(f.publisher, 0, log)

	f.userSvc = service.NewUserService(f.users, f.tasks, f.hasher, tokens, f.tx, log)
	f.taskSvc = service.NewTaskService(f.tasks, f.categories, f.tx, dispatcher, log)
	f.categorySvc = service.NewCategoryService(f.categories, f.tasks, f.tx, log)
	return f
}

// addUser stores a user with password "secret123".
func (f *fixture) addUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, "hashed:secret123")
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addTask(t *testing.T, owner *domain.User, title string) *domain.Task {
	t.Helper()
	task, err := f.taskSvc.Create(context.Background(), owner, domain.TaskFields{Title: title, Priority: 1})
	require.NoError(t, err)
	return task
}

func (f *fixture) addCategory(t *testing.T, owner *domain.User, name string) *domain.Category {
	t.Helper()
	c, err := f.categorySvc.Create(context.Background(), owner, name)
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }
