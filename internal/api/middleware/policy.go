package middleware

import (
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Messages written by Policy and RequireRole.
const (
	MsgAuthenticationRequired = "Authentication required"
	MsgInsufficientPermission = "Insufficient permissions"
)

// Requirement is what a caller must satisfy to reach a route.
type Requirement struct {
	public bool
	roles  []domain.Role
}

// Public admits anonymous callers.
func Public() Requirement { return Requirement{public: true} }

// Authenticated admits any identified caller.
func Authenticated() Requirement { return Requirement{} }

// AnyRole admits identified callers holding one of roles.
func AnyRole(roles ...domain.Role) Requirement { return Requirement{roles: roles} }

// Rule applies Requirement to requests whose path starts with Prefix and,
// if Method is set, whose method equals it.
type Rule struct {
	Method      string
	Prefix      string
	Requirement Requirement
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	return strings.HasPrefix(path, r.Prefix)
}

// DefaultRules is the access table for the task API. Order matters: the
// first matching rule wins, and the empty prefix catches everything else.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/auth/hello", Requirement: Authenticated()},
		{Method: http.MethodDelete, Prefix: "/tasks/", Requirement: AnyRole(domain.RoleAdmin)},
		{Prefix: "/auth/", Requirement: Public()},
		{Prefix: "/user/", Requirement: AnyRole(domain.RoleUser, domain.RoleAdmin)},
		{Prefix: "/admin/", Requirement: AnyRole(domain.RoleAdmin)},
		{Prefix: "", Requirement: Authenticated()},
	}
}

// Policy enforces ordered access rules. Paths are matched after basePath is
// removed. Requests no rule matches are rejected as unauthenticated.
type Policy struct {
	basePath string
	rules    []Rule
}

// NewPolicy creates a Policy for routes mounted under basePath.
func NewPolicy(basePath string, rules []Rule) *Policy {
	return &Policy{
		basePath: strings.TrimSuffix(basePath, "/"),
		rules:    rules,
	}
}

// Middleware rejects requests whose caller does not satisfy the first
// matching rule.
func (p *Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, p.basePath)

		req := Requirement{}
		for _, rule := range p.rules {
			if rule.matches(r.Method, path) {
				req = rule.Requirement
				break
			}
		}

		if !authorize(w, r, req) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards a single route so that only callers holding one of
// roles reach it, wherever the route is mounted.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	req := AnyRole(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authorize(w, r, req) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authorize writes a 401 or 403 and returns false when req is not met.
func authorize(w http.ResponseWriter, r *http.Request, req Requirement) bool {
	if req.public {
		return true
	}

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgAuthenticationRequired, nil)
		return false
	}

	if err := identity.Authorize(req.roles...); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, MsgInsufficientPermission, err,
			shared.WithElevatedLogLevel())
		return false
	}
	return true
}
