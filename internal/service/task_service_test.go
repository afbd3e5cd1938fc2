package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (*service.TaskServiceImpl, *mocks.MockTaskStore) {
	t.Helper()
	tasks := mocks.NewMockTaskStore()
	svc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)
	return svc, tasks
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTaskService_CreateAndList(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "First", "First task")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = svc.Create(ctx, 1, "Second", "Second task")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "Other", "Someone else's")
	require.NoError(t, err)

	tasks, err := svc.List(ctx, 1, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2, "listing is scoped to the owner")
	assert.Equal(t, "Second", tasks[0].Title, "newest first by default")
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc, _ := newTaskService(t)

	_, err := svc.Create(context.Background(), 1, "  ", "Description")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskService_ListFilterCompleted(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, 1, "Alpha", "Alpha task")
	_, _ = svc.Create(ctx, 1, "Beta", "Beta task")
	_, err := svc.ToggleComplete(ctx, a.ID)
	require.NoError(t, err)

	done, err := svc.List(ctx, 1, domain.TaskFilter{Completed: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Alpha", done[0].Title)
}

func TestTaskService_ToggleComplete(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()
	task, _ := svc.Create(ctx, 1, "Alpha", "Alpha task")

	toggled, err := svc.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.False(t, toggled.UpdatedAt.Before(task.UpdatedAt))

	toggled, err = svc.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = svc.ToggleComplete(ctx, 404)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_Edit(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()
	task, _ := svc.Create(ctx, 1, "Alpha", "Alpha task")

	edited, err := svc.Edit(ctx, task.ID, service.TaskPatch{Description: strPtr("New description")})
	require.NoError(t, err)
	assert.Equal(t, "New description", edited.Description)
	assert.False(t, edited.Completed)
	assert.Equal(t, "Alpha", edited.Title, "title is immutable")

	edited, err = svc.Edit(ctx, task.ID, service.TaskPatch{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, edited.Completed)
	assert.Equal(t, "New description", edited.Description)

	_, err = svc.Edit(ctx, task.ID, service.TaskPatch{Description: strPtr("no")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Edit(ctx, 404, service.TaskPatch{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

// Edit and toggle are not owner-scoped: any caller can act on any task ID.
func TestTaskService_EditIgnoresOwnership(t *testing.T) {
	svc, tasks := newTaskService(t)
	ctx := context.Background()
	task, _ := svc.Create(ctx, 1, "Alpha", "Alpha task")

	// The service takes no caller identity for edits.
	_, err := svc.Edit(ctx, task.ID, service.TaskPatch{Completed: boolPtr(true)})
	require.NoError(t, err)

	stored, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.Equal(t, int64(1), stored.OwnerID)
}

func TestTaskService_Delete(t *testing.T) {
	svc, tasks := newTaskService(t)
	ctx := context.Background()
	task, _ := svc.Create(ctx, 1, "Alpha", "Alpha task")

	require.NoError(t, svc.Delete(ctx, task.ID))
	exists, _ := tasks.ExistsByID(ctx, task.ID)
	assert.False(t, exists)

	assert.ErrorIs(t, svc.Delete(ctx, task.ID), store.ErrTaskNotFound)
}
