package api

import (
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Admin endpoint messages.
const (
	MsgUserPromoted = "User promoted to ADMIN"
	MsgRoleUpdated  = "Role updated"
)

// AdminHandler handles account administration. Policy restricts it to ADMIN.
type AdminHandler struct {
	users service.UserService
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(users service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newUserResponse(u))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Promote handles PATCH /admin/users/{id}/promote.
func (h *AdminHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.users.Promote(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgUserPromoted)
}

// ChangeRole handles PATCH /admin/users/{id}/rol.
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req RoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.users.ChangeRole(r.Context(), id, req.Role); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgRoleUpdated)
}
