package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create saves a new task and sets its ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByOwner returns the owner's tasks, filtered and ordered by filter.
	// An empty filter order means domain.DefaultTaskOrder.
	ListByOwner(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error)

	// Update persists the mutable fields of a task: description,
	// completed and updated_at.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// ExistsByID reports whether a task with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore that runs its queries in tx.
	WithTx(tx *sql.Tx) TaskStore
}
