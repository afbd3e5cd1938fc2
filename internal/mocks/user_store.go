package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. Without function
// overrides it behaves as an in-memory store keyed by username.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateRoleFn    func(ctx context.Context, id int64, role domain.Role) error
	DeleteFn        func(ctx context.Context, id int64) error

	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64

	// WithTxCalls counts WithTx invocations.
	WithTxCalls int
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Seed stores copies of users as if created, assigning IDs where missing.
func (m *MockUserStore) Seed(users ...*domain.User) {
	for _, u := range users {
		_ = m.Create(context.Background(), u)
	}
}

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.users == nil {
		m.users = make(map[string]*domain.User)
	}
	if _, exists := m.users[user.Username]; exists {
		return store.ErrUsernameExists
	}

	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	user.Password = ""

	stored := *user
	m.users[user.Username] = &stored
	return nil
}

// GetByID implements store.UserStore
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements store.UserStore
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrUserNotFound
}

// List implements store.UserStore
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateRole implements store.UserStore
func (m *MockUserStore) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			u.Role = role
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return store.ErrUserNotFound
}

// ExistsByID implements store.UserStore
func (m *MockUserStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, err := m.GetByID(ctx, id)
	if err == store.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

// Delete implements store.UserStore
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for name, u := range m.users {
		if u.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx implements store.UserStore. The mock ignores the transaction and
// returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
