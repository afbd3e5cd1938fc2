package api_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasks-api/internal/domain"
)

type taskJSON struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Completed   bool   `json:"completada"`
}

func decodeTasks(t *testing.T, body []byte) []taskJSON {
	t.Helper()
	var tasks []taskJSON
	require.NoError(t, json.Unmarshal(body, &tasks))
	return tasks
}

func TestListTasks_CompletedFilterIgnoresOrder(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", domain.RoleUser)
	bob := env.seedUser(t, "bob", domain.RoleUser)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, done := range []bool{true, false, true, false, true} {
		env.seedTask(t, alice, "task "+strconv.Itoa(i), done, base.Add(time.Duration(i)*time.Minute))
	}
	env.seedTask(t, bob, "bob's task", true, base)

	for _, orden := range []string{"", "fecha_asc", "fecha_desc", "estado_desc,fecha_asc", "nonsense"} {
		t.Run("orden="+orden, func(t *testing.T) {
			w := env.do(http.MethodGet, "/api/tasks/list?completada=true&orden="+orden, "alice", "")
			require.Equal(t, http.StatusOK, w.Code)

			tasks := decodeTasks(t, w.Body.Bytes())
			require.Len(t, tasks, 3)
			for _, task := range tasks {
				assert.True(t, task.Completed)
				assert.NotEqual(t, "bob's task", task.Title)
			}
		})
	}
}

func TestListTasks_Order(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", domain.RoleUser)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := env.seedTask(t, alice, "older", false, base)
	newer := env.seedTask(t, alice, "newer", false, base.Add(time.Hour))

	w := env.do(http.MethodGet, "/api/tasks/list", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeTasks(t, w.Body.Bytes())
	require.Len(t, tasks, 2)
	assert.Equal(t, newer.ID, tasks[0].ID, "newest first by default")

	w = env.do(http.MethodGet, "/api/tasks/list?orden=fecha_asc", "alice", "")
	tasks = decodeTasks(t, w.Body.Bytes())
	require.Len(t, tasks, 2)
	assert.Equal(t, older.ID, tasks[0].ID)
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", domain.RoleUser)

	w := env.do(http.MethodGet, "/api/tasks/list", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListTasks_InvalidCompletada(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", domain.RoleUser)

	w := env.do(http.MethodGet, "/api/tasks/list?completada=maybe", "alice", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid completada: must be true or false", decodeError(t, w.Body.Bytes()).Error)
}

func TestCreateTask(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", domain.RoleUser)

	w := env.do(http.MethodPost, "/api/tasks/create", "alice", `{"titulo":"Buy milk","descripcion":"Two litres"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Buy milk", created["titulo"])
	assert.Equal(t, false, created["completada"])
	assert.Contains(t, created, "fechaCreacion")
	assert.Contains(t, created, "fechaActualizacion")
	assert.NotContains(t, created, "owner_id")
}

func TestCreateTask_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing title", `{"descripcion":"Two litres"}`, "Invalid titulo: required field"},
		{"short title", `{"titulo":"ab","descripcion":"Two litres"}`, "Invalid titulo: must be at least 3 characters"},
		{"blank description", `{"titulo":"Buy milk","descripcion":"   "}`, "Invalid descripcion: cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.seedUser(t, "alice", domain.RoleUser)

			w := env.do(http.MethodPost, "/api/tasks/create", "alice", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w.Body.Bytes()).Error)
		})
	}
}

func TestToggleComplete(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", domain.RoleUser)
	task := env.seedTask(t, alice, "laundry", false, time.Now().UTC())
	path := "/api/tasks/" + strconv.FormatInt(task.ID, 10) + "/toggleComplete"

	w := env.do(http.MethodPatch, path, "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got taskJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Completed)

	w = env.do(http.MethodPatch, path, "alice", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Completed)

	w = env.do(http.MethodPatch, "/api/tasks/999/toggleComplete", "alice", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditTask(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", domain.RoleUser)
	task := env.seedTask(t, alice, "laundry", false, time.Now().UTC())
	path := "/api/tasks/" + strconv.FormatInt(task.ID, 10)

	w := env.do(http.MethodPatch, path, "alice", `{"descripcion":"whites only"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got taskJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "whites only", got.Description)
	assert.False(t, got.Completed, "absent fields are unchanged")

	w = env.do(http.MethodPatch, path, "alice", `{"completada":true}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Completed)
	assert.Equal(t, "whites only", got.Description)

	w = env.do(http.MethodPatch, path, "alice", `{"descripcion":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPatch, "/api/tasks/999", "alice", `{"completada":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditTask_AnyAuthenticatedUserMayEdit(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", domain.RoleUser)
	env.seedUser(t, "mallory", domain.RoleUser)
	task := env.seedTask(t, alice, "laundry", false, time.Now().UTC())
	path := "/api/tasks/" + strconv.FormatInt(task.ID, 10)

	w := env.do(http.MethodPatch, path, "mallory", `{"completada":true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPatch, path+"/toggleComplete", "mallory", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", domain.RoleUser)
	env.seedUser(t, "root", domain.RoleAdmin)
	task := env.seedTask(t, alice, "laundry", false, time.Now().UTC())
	path := "/api/tasks/" + strconv.FormatInt(task.ID, 10)

	w := env.do(http.MethodDelete, path, "alice", "")
	assert.Equal(t, http.StatusForbidden, w.Code, "only admins delete tasks")

	w = env.do(http.MethodDelete, "/api/tasks/999", "root", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodDelete, path, "root", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.do(http.MethodPatch, path+"/toggleComplete", "root", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "deleted task is gone")

	w = env.do(http.MethodDelete, path, "root", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskRoutes_NonNumericID(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "root", domain.RoleAdmin)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPatch, "/api/tasks/abc/toggleComplete", ""},
		{http.MethodPatch, "/api/tasks/abc", `{"completada":true}`},
		{http.MethodDelete, "/api/tasks/abc", ""},
	} {
		w := env.do(tc.method, tc.path, "root", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.method+" "+tc.path)
	}
}
