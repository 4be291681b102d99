package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	owner := uuid.New()

	task, err := NewTask(owner, TaskFields{Title: "Write report", Priority: 3})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.UserID != owner {
		t.Errorf("Expected owner %s, got %s", owner, task.UserID)
	}
	if task.Priority != 3 {
		t.Errorf("Expected priority 3, got %d", task.Priority)
	}
	if task.Status {
		t.Error("Expected new task to be incomplete")
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("Expected CreatedAt and UpdatedAt to match on creation")
	}
}

func TestNewTaskRejectsInvalidInput(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name   string
		owner  uuid.UUID
		fields TaskFields
		want   error
	}{
		{"empty title", owner, TaskFields{Title: "", Priority: 1}, ErrValidation},
		{"blank title", owner, TaskFields{Title: "   ", Priority: 1}, ErrValidation},
		{"priority zero", owner, TaskFields{Title: "t", Priority: 0}, ErrValidation},
		{"priority six", owner, TaskFields{Title: "t", Priority: 6}, ErrValidation},
		{"negative priority", owner, TaskFields{Title: "t", Priority: -1}, ErrValidation},
		{"nil owner", uuid.Nil, TaskFields{Title: "t", Priority: 1}, ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.owner, tt.fields)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewTaskPriorityBounds(t *testing.T) {
	for p := MinPriority; p <= MaxPriority; p++ {
		task, err := NewTask(uuid.New(), TaskFields{Title: "t", Priority: p})
		if err != nil {
			t.Fatalf("priority %d: unexpected error %v", p, err)
		}
		if task.Priority != p {
			t.Errorf("Expected priority %d, got %d", p, task.Priority)
		}
	}
}

func TestTaskApplyUpdate(t *testing.T) {
	desc := "details"
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := uuid.New()

	task, err := NewTask(uuid.New(), TaskFields{
		Title:       "old",
		Description: &desc,
		DueDate:     &due,
		Priority:    4,
		CategoryID:  &category,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	owner := task.UserID

	// Zero priority and nil category keep the old values.
	if err := task.ApplyUpdate(TaskFields{Title: "new", Status: true}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Title != "new" {
		t.Errorf("Expected title new, got %s", task.Title)
	}
	if task.Priority != 4 {
		t.Errorf("Expected priority to stay 4, got %d", task.Priority)
	}
	if task.Description != nil || task.DueDate != nil {
		t.Error("Expected description and due date to be overwritten with nil")
	}
	if task.CategoryID == nil || *task.CategoryID != category {
		t.Error("Expected category to be kept when none is supplied")
	}
	if !task.Status {
		t.Error("Expected status true")
	}
	if task.UserID != owner {
		t.Error("Owner must not change on update")
	}

	if err := task.ApplyUpdate(TaskFields{Title: "new", Priority: 2}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Priority != 2 {
		t.Errorf("Expected priority 2, got %d", task.Priority)
	}

	moved := uuid.New()
	if err := task.ApplyUpdate(TaskFields{Title: "new", CategoryID: &moved}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *task.CategoryID != moved {
		t.Errorf("Expected category %s, got %s", moved, *task.CategoryID)
	}
}

func TestNewTaskMessages(t *testing.T) {
	tests := []struct {
		fields TaskFields
		want   string
	}{
		{TaskFields{Title: "", Priority: 2}, "Task title and priority are required"},
		{TaskFields{Title: "t", Priority: 0}, "Task title and priority are required"},
		{TaskFields{Title: "t", Priority: 7}, "Priority must be between 1 and 5"},
	}

	for _, tt := range tests {
		_, err := NewTask(uuid.New(), tt.fields)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Message != tt.want {
			t.Errorf("NewTask(%+v): expected %q, got %v", tt.fields, tt.want, err)
		}
	}
}

func TestTaskApplyUpdateRejectsInvalid(t *testing.T) {
	task, err := NewTask(uuid.New(), TaskFields{Title: "keep", Priority: 1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := task.ApplyUpdate(TaskFields{Title: "x", Priority: 9}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if err := task.ApplyUpdate(TaskFields{Title: ""}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if task.Title != "keep" {
		t.Errorf("Rejected update must not mutate the task, got title %q", task.Title)
	}
}

func TestTaskOwnedBy(t *testing.T) {
	owner := uuid.New()
	task, _ := NewTask(owner, TaskFields{Title: "t", Priority: 1})

	if !task.OwnedBy(owner) {
		t.Error("Expected task to be owned by its creator")
	}
	if task.OwnedBy(uuid.New()) {
		t.Error("Expected task not to be owned by another user")
	}
}
