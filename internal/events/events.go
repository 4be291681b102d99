package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/domain"
)

// NoDueDate is the timestamp value used for tasks without a due date.
const NoDueDate = "No due date"

// TaskNotification is published once for every created task.
type TaskNotification struct {
	UserID    uuid.UUID `json:"user_id"`
	TaskID    uuid.UUID `json:"task_id"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}

// NewTaskNotification builds the notification for a newly created task.
// Timestamp carries the task's due date in RFC 3339, or NoDueDate.
func NewTaskNotification(task *domain.Task) TaskNotification {
	ts := NoDueDate
	if task.DueDate != nil {
		ts = task.DueDate.UTC().Format(time.RFC3339)
	}
	return TaskNotification{
		UserID:    task.UserID,
		TaskID:    task.ID,
		Message:   fmt.Sprintf("Task '%s' created successfully!", task.Title),
		Timestamp: ts,
	}
}

// Marshal encodes the notification as the JSON queue body.
func (n TaskNotification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

// UnmarshalTaskNotification decodes a queue body. Bodies without a user or
// task id are rejected.
func UnmarshalTaskNotification(body []byte) (TaskNotification, error) {
	var n TaskNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return TaskNotification{}, fmt.Errorf("failed to decode task notification: %w", err)
	}
	if n.UserID == uuid.Nil || n.TaskID == uuid.Nil {
		return TaskNotification{}, fmt.Errorf("task notification is missing user_id or task_id")
	}
	return n, nil
}

// Publisher sends notifications to a transport.
type Publisher interface {
	// Publish delivers n or returns an error. It must respect ctx's deadline.
	Publish(ctx context.Context, n TaskNotification) error
}

// Handler processes a received notification.
// Returning an error asks the transport to redeliver it.
type Handler interface {
	HandleNotification(ctx context.Context, n TaskNotification) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, n TaskNotification) error

// HandleNotification calls f.
func (f HandlerFunc) HandleNotification(ctx context.Context, n TaskNotification) error {
	return f(ctx, n)
}
