package api

import (
	"strings"
	"time"

	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/events"
)

// Request payloads. Presence rules live in the domain so that the messages
// match across transports; the tags here only reject malformed values.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskRequest defines the payload for creating and updating tasks.
// CategoryID is kept as a string so a malformed value is reported like any
// other malformed id. An omitted priority defaults to 1; an explicit 0 is
// passed through.
type TaskRequest struct {
	Title       string     `json:"title"       validate:"max=255"`
	Description *string    `json:"description" validate:"omitempty,max=10000"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *int       `json:"priority"`
	Status      bool       `json:"status"`
	CategoryID  *string    `json:"category_id"`
}

// Fields converts the request into domain input.
func (r TaskRequest) Fields() (domain.TaskFields, error) {
	f := domain.TaskFields{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    domain.DefaultPriority,
		Status:      r.Status,
	}
	if r.Priority != nil {
		f.Priority = *r.Priority
	}
	if r.CategoryID != nil && strings.TrimSpace(*r.CategoryID) != "" {
		id, err := domain.ParseID("category_id", *r.CategoryID)
		if err != nil {
			return domain.TaskFields{}, err
		}
		f.CategoryID = &id
	}
	return f, nil
}

// CategoryRequest defines the payload for creating a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TaskResponse carries a single task and a confirmation message.
type TaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

// TasksResponse carries a task listing.
type TasksResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

// CategoryResponse carries a single category and a confirmation message.
type CategoryResponse struct {
	Message  string           `json:"message"`
	Category *domain.Category `json:"category"`
}

// CategoriesResponse carries a category listing.
type CategoriesResponse struct {
	Categories []*domain.Category `json:"categories"`
}

// CategoryTasksResponse carries the tasks of one category, identified by name.
type CategoryTasksResponse struct {
	Category string         `json:"category"`
	Tasks    []*domain.Task `json:"tasks"`
}

// NotificationsResponse carries the caller's recent task notifications.
type NotificationsResponse struct {
	Notifications []events.TaskNotification `json:"notifications"`
}
