package shared

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

type contextKey int

const (
	traceIDKey contextKey = iota
	identityKey
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   int64
	Username string
	Role     domain.Role
}

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...domain.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// Authorize returns an error wrapping domain.ErrForbidden unless the
// identity holds one of roles. An empty roles list permits any identity.
func (i Identity) Authorize(roles ...domain.Role) error {
	if len(roles) == 0 || i.HasRole(roles...) {
		return nil
	}
	return fmt.Errorf("%w: role %s may not access this resource", domain.ErrForbidden, i.Role)
}

// WithIdentity attaches the authenticated caller to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated caller, if any.
// Requests without one are anonymous.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// NewTraceID returns a random trace ID.
func NewTraceID() string {
	return uuid.NewString()
}

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}
