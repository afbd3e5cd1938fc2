package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

const bearerPrefix = "Bearer "

// Authenticator resolves the caller from a bearer token. It never rejects a
// request: callers it cannot identify continue anonymously and Policy
// decides what they may reach.
type Authenticator struct {
	tokens auth.TokenService
	users  store.UserStore
}

// NewAuthenticator creates a new Authenticator with the given dependencies.
func NewAuthenticator(tokens auth.TokenService, users store.UserStore) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate attaches a shared.Identity to the request context when the
// Authorization header carries a valid token for an existing account.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])

		username, err := a.tokens.ExtractSubject(ctx, token)
		if err != nil {
			log.Debug("ignoring undecodable bearer token", "error", redact.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.users.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				log.Debug("bearer token for unknown account")
			} else {
				log.Error("failed to load account for bearer token", "error", redact.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if !a.tokens.Validate(ctx, token, user.Username) {
			next.ServeHTTP(w, r)
			return
		}

		ctx = shared.WithIdentity(ctx, shared.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
