package domain

import (
	"time"

	"github.com/google/uuid"
)

// Password length bounds. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// User represents a registered account. Users are created on registration
// and are immutable afterwards.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a User from an email and an already hashed password.
func NewUser(email, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks that the user is ready to be persisted.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "User ID cannot be empty", ErrInvalidID)
	}
	if u.Email == "" {
		return NewValidationError("email", "Email is required", ErrValidation)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "Password hash cannot be empty", ErrValidation)
	}
	return nil
}

// ValidateRegistration checks the plaintext credentials submitted at sign-up.
func ValidateRegistration(email, password string) error {
	if err := ValidateCredentialsPresent(email, password); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return NewValidationError("password", "Password must be at least 6 characters long", ErrValidation)
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password", "Password must be at most 72 characters long", ErrValidation)
	}
	return nil
}

// ValidateCredentialsPresent fails when either credential is missing.
func ValidateCredentialsPresent(email, password string) error {
	if email == "" || password == "" {
		return NewValidationError("", "Email and password are required", ErrValidation)
	}
	return nil
}
