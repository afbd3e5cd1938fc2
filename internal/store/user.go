package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create saves a new user and sets its ID and timestamps.
	// The caller MUST set HashedPassword; plaintext passwords are never stored.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by exact, case-sensitive username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns every user ordered by ID.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateRole replaces the role of a user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateRole(ctx context.Context, id int64, role domain.Role) error

	// ExistsByID reports whether a user with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Delete removes a user and, by cascade, their tasks.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore that runs its queries in tx.
	WithTx(tx *sql.Tx) UserStore
}
