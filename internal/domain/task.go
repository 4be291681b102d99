package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority bounds, inclusive.
const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 1
)

// Task is a unit of work owned by exactly one user. UserID never changes
// after creation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"`
	Status      bool       `json:"status"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskFields carries the client-editable part of a task.
type TaskFields struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    int
	Status      bool
	CategoryID  *uuid.UUID
}

// NewTask creates a task owned by userID.
func NewTask(userID uuid.UUID, f TaskFields) (*Task, error) {
	if userID == uuid.Nil {
		return nil, NewValidationError("user_id", "Task owner is required", ErrInvalidID)
	}
	if strings.TrimSpace(f.Title) == "" || f.Priority == 0 {
		return nil, NewValidationError("", "Task title and priority are required", ErrValidation)
	}
	if err := validatePriority(f.Priority); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New(),
		Title:       f.Title,
		Description: f.Description,
		DueDate:     f.DueDate,
		Priority:    f.Priority,
		Status:      f.Status,
		UserID:      userID,
		CategoryID:  f.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ApplyUpdate overwrites title, description, due date and status with f.
// A zero priority keeps the current one, as does a nil category.
func (t *Task) ApplyUpdate(f TaskFields) error {
	if f.Priority != 0 {
		if err := validatePriority(f.Priority); err != nil {
			return err
		}
	}
	if err := validateTitle(f.Title); err != nil {
		return err
	}

	t.Title = f.Title
	t.Description = f.Description
	t.DueDate = f.DueDate
	if f.Priority != 0 {
		t.Priority = f.Priority
	}
	t.Status = f.Status
	if f.CategoryID != nil {
		t.CategoryID = f.CategoryID
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// OwnedBy reports whether userID owns the task.
func (t *Task) OwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "Task title cannot be empty", ErrValidation)
	}
	return nil
}

func validatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return NewValidationError("priority", "Priority must be between 1 and 5", ErrValidation)
	}
	return nil
}
