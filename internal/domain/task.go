package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinTaskTextLength is the minimum length of a task title and description.
const MinTaskTextLength = 3

// Task is a to-do item owned by exactly one user.
// JSON names follow the public wire format of the API.
type Task struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"-"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion"`
	Completed   bool      `json:"completada"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	UpdatedAt   time.Time `json:"fechaActualizacion"`
}

// NewTask creates an incomplete task owned by ownerID.
func NewTask(ownerID int64, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.OwnerID <= 0 {
		return NewValidationError("owner", "is required", ErrInvalidID)
	}
	if err := ValidateTaskText("titulo", t.Title); err != nil {
		return err
	}
	return ValidateTaskText("descripcion", t.Description)
}

// ValidateTaskText enforces the non-blank and minimum length rules shared by
// titles and descriptions.
func ValidateTaskText(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return NewValidationError(field, "cannot be empty", nil)
	}
	if utf8.RuneCountInString(trimmed) < MinTaskTextLength {
		return NewValidationError(field, "must be at least 3 characters", nil)
	}
	return nil
}

// TaskSortField names a sortable task attribute.
type TaskSortField string

// Sortable fields.
const (
	SortByCreatedAt TaskSortField = "created_at"
	SortByCompleted TaskSortField = "completed"
)

// TaskOrder is one sort key of a task listing.
type TaskOrder struct {
	Field      TaskSortField
	Descending bool
}

// DefaultTaskOrder lists newest tasks first.
var DefaultTaskOrder = []TaskOrder{{Field: SortByCreatedAt, Descending: true}}

var taskOrderTokens = map[string]TaskOrder{
	"fecha_asc":   {Field: SortByCreatedAt},
	"fecha_desc":  {Field: SortByCreatedAt, Descending: true},
	"estado_asc":  {Field: SortByCompleted},
	"estado_desc": {Field: SortByCompleted, Descending: true},
}

// ParseTaskOrder parses a comma-separated list such as "estado_asc,fecha_desc".
// Unknown tokens are ignored; if nothing usable remains the default order
// (newest first) is returned.
func ParseTaskOrder(s string) []TaskOrder {
	var orders []TaskOrder
	for _, token := range strings.Split(s, ",") {
		if order, ok := taskOrderTokens[strings.TrimSpace(token)]; ok {
			orders = append(orders, order)
		}
	}
	if len(orders) == 0 {
		return DefaultTaskOrder
	}
	return orders
}

// TaskFilter narrows and orders an owner's task listing.
type TaskFilter struct {
	// Completed filters by completion state when non-nil.
	Completed *bool
	Order     []TaskOrder
}
