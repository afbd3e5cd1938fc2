package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// BasePath is the prefix every API route is mounted under.
const BasePath = "/api"

// Handlers groups the handlers served under BasePath.
type Handlers struct {
	Auth  *AuthHandler
	Tasks *TaskHandler
	Users *UserHandler
	Admin *AdminHandler
}

// MountRoutes registers the API under BasePath. Every request passes through
// authn first and then the access policy built from rules.
func MountRoutes(r chi.Router, h Handlers, authn *middleware.Authenticator, rules []middleware.Rule) {
	policy := middleware.NewPolicy(BasePath, rules)

	r.Route(BasePath, func(r chi.Router) {
		r.Use(authn.Authenticate)
		r.Use(policy.Middleware)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/hello", h.Auth.Hello)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/list", h.Tasks.List)
			r.Post("/create", h.Tasks.Create)
			r.Patch("/{id}/toggleComplete", h.Tasks.ToggleComplete)
			r.Patch("/{id}", h.Tasks.Edit)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{id}", h.Tasks.Delete)
		})

		r.Get("/user/profile", h.Users.Profile)

		r.Route("/admin/users", func(r chi.Router) {
			r.Get("/", h.Admin.ListUsers)
			r.Patch("/{id}/promote", h.Admin.Promote)
			r.Patch("/{id}/rol", h.Admin.ChangeRole)
		})
	})
}
