package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Category groups a user's tasks. Names are unique per owner, not globally.
type Category struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"user_id"`
}

// NewCategory creates a category owned by userID.
func NewCategory(userID uuid.UUID, name string) (*Category, error) {
	c := &Category{
		ID:     uuid.New(),
		Name:   name,
		UserID: userID,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the category fields.
func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return NewValidationError("user_id", "Category owner is required", ErrInvalidID)
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "Category name is required", ErrValidation)
	}
	return nil
}
