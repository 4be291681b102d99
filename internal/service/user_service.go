package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/service/auth"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// UserService provides account operations.
type UserService interface {
	// Register creates an account. Returns a *domain.ValidationError for bad
	// input and store.ErrEmailExists when the email is taken.
	Register(ctx context.Context, email, password string) error

	// Login verifies credentials and issues an access token.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (string, error)

	// ListUserTasks returns the tasks of the user identified by rawID.
	// Returns store.ErrUserNotFound for an unknown user and ErrNoUserTasks
	// when the user has none.
	ListUserTasks(ctx context.Context, rawID string) ([]*domain.Task, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	tasks  store.TaskStore
	hasher auth.PasswordHasher
	tokens auth.JWTService
	tx     store.Transactor
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	tasks store.TaskStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	tx store.Transactor,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		tasks:  tasks,
		hasher: hasher,
		tokens: tokens,
		tx:     tx,
		logger: logger.With("component", "user_service"),
	}
}

// Register creates a new user account.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateRegistration(email, password); err != nil {
		return err
	}

	// Reject taken emails before hashing.
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Debug("registration with existing email rejected")
		return store.ErrEmailExists
	case !errors.Is(err, store.ErrUserNotFound):
		log.Error("failed to check existing email", "error", err)
		return fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user, err := domain.NewUser(email, hashed)
	if err != nil {
		return err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		// A concurrent registration can still win between the check and the
		// insert; the unique index reports it.
		if store.IsDuplicateError(err) {
			log.Debug("registration with existing email rejected")
			return store.ErrEmailExists
		}
		log.Error("failed to register user", "error", err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return nil
}

// Login verifies the credentials and returns a signed access token.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateCredentialsPresent(email, password); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", "user_id", user.ID)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// ListUserTasks returns all tasks of the user identified by rawID.
func (s *UserServiceImpl) ListUserTasks(ctx context.Context, rawID string) ([]*domain.Task, error) {
	userID, err := domain.ParseID("id", rawID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoUserTasks
	}
	return tasks, nil
}
