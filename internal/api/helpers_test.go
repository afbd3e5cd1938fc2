package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
)

const testPassword = "password1"

// testEnv is a full API router over in-memory stores.
type testEnv struct {
	router http.Handler
	users  *mocks.MockUserStore
	tasks  *mocks.MockTaskStore
	tokens *mocks.MockTokenService
	db     sqlmock.Sqlmock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := mocks.NewMockUserStore()
	tasks := mocks.NewMockTaskStore()
	tokens := &mocks.MockTokenService{Expired: map[string]bool{}}

	userSvc, err := service.NewUserService(users, tokens, &mocks.MockPasswordHasher{}, db, nil)
	require.NoError(t, err)
	taskSvc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	api.MountRoutes(r, api.Handlers{
		Auth:  api.NewAuthHandler(userSvc),
		Tasks: api.NewTaskHandler(taskSvc),
		Users: api.NewUserHandler(userSvc),
		Admin: api.NewAdminHandler(userSvc),
	}, middleware.NewAuthenticator(tokens, users), middleware.DefaultRules())

	return &testEnv{router: r, users: users, tasks: tasks, tokens: tokens, db: dbMock}
}

// seedUser stores an account whose password is testPassword and returns it.
func (e *testEnv) seedUser(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	e.users.Seed(&domain.User{Username: username, HashedPassword: "hashed:" + testPassword, Role: role})
	u, err := e.users.GetByUsername(context.Background(), username)
	require.NoError(t, err)
	return u
}

// seedTask stores a task for owner created at the given time.
func (e *testEnv) seedTask(t *testing.T, owner *domain.User, title string, completed bool, created time.Time) *domain.Task {
	t.Helper()
	task := &domain.Task{
		OwnerID:     owner.ID,
		Title:       title,
		Description: "description of " + title,
		Completed:   completed,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}

// do sends a request as username (anonymous when empty).
func (e *testEnv) do(method, path, username, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if username != "" {
		req.Header.Set("Authorization", "Bearer token-"+username)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
