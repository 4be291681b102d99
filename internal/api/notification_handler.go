package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/api/shared"
	"github.com/phrazzld/tasknest-api/internal/events"
)

// DefaultNotificationLimit is used when no limit is configured.
const DefaultNotificationLimit = 20

// MsgInvalidLimit is returned for a malformed limit query parameter.
const MsgInvalidLimit = "limit must be a positive integer"

// NotificationReader reads a user's stored task notifications, newest first.
type NotificationReader interface {
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]events.TaskNotification, error)
}

// NotificationHandler serves the caller's recent task notifications.
type NotificationHandler struct {
	reader   NotificationReader
	maxLimit int
	logger   *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler. maxLimit caps and
// defaults the number of notifications per response.
func NewNotificationHandler(reader NotificationReader, maxLimit int, logger *slog.Logger) *NotificationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxLimit <= 0 {
		maxLimit = DefaultNotificationLimit
	}
	return &NotificationHandler{
		reader:   reader,
		maxLimit: maxLimit,
		logger:   logger.With(slog.String("component", "notification_handler")),
	}
}

// List handles GET /notifications/?limit=N. Unlike the task listings an
// empty inbox is a 200 with an empty list.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	limit := h.maxLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidLimit)
			return
		}
		limit = min(n, h.maxLimit)
	}

	notifications, err := h.reader.Recent(r.Context(), user.ID, limit)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if notifications == nil {
		notifications = []events.TaskNotification{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NotificationsResponse{Notifications: notifications})
}
