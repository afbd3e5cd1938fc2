package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice", "secret123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("Expected username alice, got %s", user.Username)
	}

	if user.Role != RoleUser {
		t.Errorf("Expected role %s, got %s", RoleUser, user.Role)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	if user.ID != 0 {
		t.Errorf("Expected ID to be assigned by storage, got %d", user.ID)
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		field    string
	}{
		{"empty username", "", "secret123", "username"},
		{"short username", "al", "secret123", "username"},
		{"long username", strings.Repeat("a", 51), "secret123", "username"},
		{"empty password", "alice", "", "password"},
		{"short password", "alice", "abc", "password"},
		{"long password", "alice", strings.Repeat("p", 73), "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.password)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, vErr.Field)
			}
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	stored := User{ID: 1, Username: "alice", HashedPassword: "$2a$10$hash", Role: RoleAdmin}
	if err := stored.Validate(); err != nil {
		t.Errorf("Expected stored user to be valid, got %v", err)
	}
	if !stored.IsAdmin() {
		t.Error("Expected IsAdmin to be true")
	}

	stored.Role = "SUPERUSER"
	if err := stored.Validate(); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Expected ErrInvalidRole, got %v", err)
	}
}
