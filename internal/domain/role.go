package domain

import "strings"

// Role is the coarse-grained capability tag attached to an account.
type Role string

// Known roles. No other value is ever persisted.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a case-insensitive role name into a Role.
// Any value other than USER or ADMIN is rejected.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", NewValidationError("rol", "must be USER or ADMIN", ErrInvalidRole)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
