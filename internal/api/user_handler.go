package api

import (
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/service"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile handles GET /user/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.users.Profile(r.Context(), identity.Username)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
