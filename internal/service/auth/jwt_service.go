package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the token and returns its claims.
	// Returns ErrInvalidToken or ErrExpiredToken when the token cannot be trusted,
	// and ErrMissingSubject when it is authentic but carries no usable user_id.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims holds the validated contents of an access token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}
