package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasknest-api/internal/api/shared"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/service/auth"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// Messages returned by Authenticate.
const (
	MsgNotAuthenticated      = "Not authenticated"
	MsgInvalidCredentials    = "Invalid authentication credentials"
	MsgCouldNotValidate      = "Could not validate credentials"
	MsgUserNotFound          = "User not found"
	MsgAuthenticationFailure = "Authentication error"
)

// AuthMiddleware resolves the bearer credential of each request to a user.
type AuthMiddleware struct {
	resolver *auth.IdentityResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(resolver *auth.IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate places the authenticated *domain.User in the request context
// or rejects the request:
//
//	missing or non-Bearer header  401 Not authenticated
//	token without usable user_id  401 Invalid authentication credentials
//	bad signature or expired      403 Could not validate credentials
//	user no longer exists         404 User not found
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		user, err := m.resolver.ResolveHeader(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				w.Header().Set("WWW-Authenticate", "Bearer")
				shared.RespondWithError(w, r, http.StatusUnauthorized, MsgNotAuthenticated)
			case errors.Is(err, auth.ErrMissingSubject):
				w.Header().Set("WWW-Authenticate", "Bearer")
				shared.RespondWithError(w, r, http.StatusUnauthorized, MsgInvalidCredentials)
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, MsgCouldNotValidate, err)
			case errors.Is(err, store.ErrUserNotFound):
				shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, MsgUserNotFound, err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgAuthenticationFailure, err)
			}
			return
		}

		log.Debug("request authenticated", slog.String("user_id", user.ID.String()))
		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}
