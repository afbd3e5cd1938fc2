package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskPatch holds the optional fields of a task edit. Nil means unchanged.
type TaskPatch struct {
	Description *string
	Completed   *bool
}

// TaskService provides task operations.
//
// ToggleComplete and Edit act on any task by ID regardless of owner; only
// listing is scoped to the caller.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, title, description string) (*domain.Task, error)
	List(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error)
	ToggleComplete(ctx context.Context, id int64) (*domain.Task, error)
	Edit(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// TaskServiceImpl implements TaskService.
type TaskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
	now    func() time.Time
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (*TaskServiceImpl, error) {
	if tasks == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create implements TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, ownerID int64, title, description string) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, description)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task",
			"error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// List implements TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error) {
	if len(filter.Order) == 0 {
		filter.Order = domain.DefaultTaskOrder
	}
	tasks, err := s.tasks.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ToggleComplete implements TaskService.
func (s *TaskServiceImpl) ToggleComplete(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	task.Completed = !task.Completed
	task.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return task, nil
}

// Edit implements TaskService.
func (s *TaskServiceImpl) Edit(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error) {
	if patch.Description != nil {
		if err := domain.ValidateTaskText("descripcion", *patch.Description); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete implements TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", "task_id", id)
	return nil
}
