package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasknest-api/internal/api/shared"
	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
)

// currentUser returns the user placed in the context by the auth middleware.
// It writes a 401 response and returns false when there is none, which only
// happens if a protected route was registered without the middleware.
func currentUser(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		log.Warn("user not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	return user, true
}

// decodeRequest decodes and validates the JSON body into v. On failure it
// writes a 400 response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestBody, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// requestLogger returns the request-scoped logger, falling back to def.
func requestLogger(r *http.Request, def *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), def)
}
