package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

func newAuthResponse(t *auth.Token) AuthResponse {
	return AuthResponse{
		Token:     t.Value,
		ExpiresAt: t.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// TaskCreateRequest defines the payload for creating a task.
// Length rules are enforced by the domain so whitespace is trimmed first.
type TaskCreateRequest struct {
	Title       string `json:"titulo"      validate:"required"`
	Description string `json:"descripcion" validate:"required"`
}

// TaskPatchRequest carries the optional fields of a task edit.
type TaskPatchRequest struct {
	Description *string `json:"descripcion,omitempty"`
	Completed   *bool   `json:"completada,omitempty"`
}

// RoleRequest defines the payload for changing a user's role.
type RoleRequest struct {
	Role string `json:"rol" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"rol"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role.String(),
	}
}
