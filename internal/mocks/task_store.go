package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskStore implements store.TaskStore in memory. ListByOwner honours
// the completion filter and the sort keys.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Task, error)
	ListByOwnerFn func(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error)
	UpdateFn      func(ctx context.Context, task *domain.Task) error
	DeleteFn      func(ctx context.Context, id int64) error

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{tasks: make(map[int64]*domain.Task)}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tasks == nil {
		m.tasks = make(map[int64]*domain.Task)
	}
	if task.ID == 0 {
		m.nextID++
		task.ID = m.nextID
	} else if task.ID > m.nextID {
		m.nextID = task.ID
	}
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

// ListByOwner implements store.TaskStore
func (m *MockTaskStore) ListByOwner(
	ctx context.Context,
	ownerID int64,
	filter domain.TaskFilter,
) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Task, 0)
	for _, t := range m.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}

	order := filter.Order
	if len(order) == 0 {
		order = domain.DefaultTaskOrder
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range order {
			c := compareTasks(out[i], out[j], o.Field)
			if c == 0 {
				continue
			}
			if o.Descending {
				return c > 0
			}
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func compareTasks(a, b *domain.Task, field domain.TaskSortField) int {
	switch field {
	case domain.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case domain.SortByCompleted:
		switch {
		case a.Completed == b.Completed:
			return 0
		case !a.Completed:
			return -1
		default:
			return 1
		}
	}
	return 0
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	t.Description = task.Description
	t.Completed = task.Completed
	t.UpdatedAt = task.UpdatedAt
	return nil
}

// ExistsByID implements store.TaskStore
func (m *MockTaskStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[id]
	return ok, nil
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// WithTx implements store.TaskStore
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
