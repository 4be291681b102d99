package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/tasknest-api/internal/domain"
	"github.com/phrazzld/tasknest-api/internal/store"
)

// IdentityResolver turns a bearer credential into the user it was issued to.
// The user is looked up on every call; nothing is cached.
type IdentityResolver struct {
	tokens JWTService
	users  store.UserStore
}

// NewIdentityResolver creates an IdentityResolver.
func NewIdentityResolver(tokens JWTService, users store.UserStore) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// ResolveHeader extracts the bearer token from an Authorization header value
// and resolves it. A missing header or a non-Bearer scheme yields ErrMissingToken.
func (r *IdentityResolver) ResolveHeader(ctx context.Context, header string) (*domain.User, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, token)
}

// Resolve validates token and loads its user.
// Errors: ErrInvalidToken, ErrExpiredToken, ErrMissingSubject, store.ErrUserNotFound.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := r.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load authenticated user: %w", err)
	}
	return user, nil
}

// BearerToken returns the credential of a "Bearer <token>" header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
