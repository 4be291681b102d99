package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ParseID parses a client-supplied identifier. Empty input and anything that
// is not a UUID both fail with a *ValidationError wrapping ErrInvalidID.
func ParseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, NewValidationError(field, "ID is required", ErrInvalidID)
	}

	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, NewValidationError(field, "Invalid ID format. Must be a valid UUID.", ErrInvalidID)
	}
	return id, nil
}
