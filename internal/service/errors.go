package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasknest-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoTasks indicates the caller has no tasks. Empty listings are reported as not found.
	ErrNoTasks = fmt.Errorf("%w: no tasks", store.ErrNotFound)

	// ErrNoUserTasks indicates the requested user has no tasks.
	ErrNoUserTasks = fmt.Errorf("%w: no tasks for user", store.ErrNotFound)

	// ErrNoCategories indicates the caller has no categories.
	ErrNoCategories = fmt.Errorf("%w: no categories", store.ErrNotFound)

	// ErrNoCategoryTasks indicates the category holds no tasks.
	ErrNoCategoryTasks = fmt.Errorf("%w: no tasks in category", store.ErrNotFound)
)
