package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasknest-api/internal/api/shared"
	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/service"
	"github.com/phrazzld/tasknest-api/internal/service/auth"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// Client-facing messages.
const (
	MsgInvalidRequestBody = "Invalid request body"
	MsgUnexpected         = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Credential and duplicate failures are client errors, not 401/409.
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrCategoryExists):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingSubject):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, store.ErrEmailExists):
		return "User already exists"
	case errors.Is(err, store.ErrCategoryExists):
		return "Category already exists"

	case errors.Is(err, auth.ErrMissingToken):
		return "Not authenticated"
	case errors.Is(err, auth.ErrMissingSubject):
		return "Invalid authentication credentials"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Could not validate credentials"

	case errors.Is(err, service.ErrNotOwned):
		return "Not authorized to delete this task"

	// Empty listings before the generic not-found entries, since they wrap
	// store.ErrNotFound.
	case errors.Is(err, service.ErrNoUserTasks):
		return "No tasks found for this user"
	case errors.Is(err, service.ErrNoTasks):
		return "No tasks found"
	case errors.Is(err, service.ErrNoCategories):
		return "No categories found"
	case errors.Is(err, service.ErrNoCategoryTasks):
		return "No tasks found in this category"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found or does not belong to the current user"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	if errors.Is(err, service.ErrNotOwned) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// SanitizeValidationError turns validator errors into a short message that
// names the JSON field and the failed rule.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "uuid":
		return "invalid UUID"
	default:
		return "validation failed"
	}
}
