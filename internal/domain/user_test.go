package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validEmail := "test@example.com"
	validHash := "$2a$10$abcdefghijklmnopqrstuv"

	user, err := NewUser(validEmail, validHash)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}
	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	_, err = NewUser("", validHash)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty email, got %v", err)
	}

	_, err = NewUser(validEmail, "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty hash, got %v", err)
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantMsg  string
	}{
		{"valid", "a@x.io", "secret", ""},
		{"missing email", "", "secret", "Email and password are required"},
		{"missing password", "a@x.io", "", "Email and password are required"},
		{"short password", "a@x.io", "12345", "Password must be at least 6 characters long"},
		{"long password", "a@x.io", strings.Repeat("p", 73), "Password must be at most 72 characters long"},
		{"exactly six", "a@x.io", "123456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.email, tt.password)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, verr.Message)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("Expected error to wrap ErrValidation")
			}
		})
	}
}

func TestUserJSONHidesHash(t *testing.T) {
	user, err := NewUser("test@example.com", "hash")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "hash") {
		t.Errorf("Expected hashed password to be omitted, got %s", data)
	}
}
