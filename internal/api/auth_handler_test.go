package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

func decodeError(t *testing.T, body []byte) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/register", "", `{"username":"alice","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reg api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.NotEmpty(t, reg.ExpiresAt)

	w = env.do(http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	subject, err := env.tokens.ExtractSubject(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	stored, err := env.users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
}

func TestRegister_DuplicateLeavesAccountUntouched(t *testing.T) {
	env := newTestEnv(t)
	existing := env.seedUser(t, "alice", domain.RoleAdmin)

	w := env.do(http.MethodPost, "/api/auth/register", "", `{"username":"alice","password":"another-pass"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", decodeError(t, w.Body.Bytes()).Error)

	after, err := env.users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, existing.Role, after.Role)
	assert.Equal(t, existing.HashedPassword, after.HashedPassword)
}

func TestRegister_InvalidBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", "", "Invalid request format"},
		{"malformed json", `{"username":`, "Invalid request format"},
		{"missing password", `{"username":"alice"}`, "Invalid password: required field"},
		{"short username", `{"username":"al","password":"secret123"}`, "Invalid username: too short"},
		{"short password", `{"username":"alice","password":"123"}`, "Invalid password: too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := env.do(http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w.Body.Bytes()).Error)
		})
	}
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", domain.RoleUser)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"wrong password", `{"username":"alice","password":"wrong-pass"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"bob","password":"password1"}`, http.StatusUnauthorized},
		{"malformed body", `not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/auth/login", "", tt.body)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "Invalid credentials", decodeError(t, w.Body.Bytes()).Error)
			}
		})
	}
}

func TestHello(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", domain.RoleUser)

	w := env.do(http.MethodGet, "/api/auth/hello", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"`+api.HelloMessage+`"}`, w.Body.String())

	w = env.do(http.MethodGet, "/api/auth/hello", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpiredTokenIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", domain.RoleUser)
	env.tokens.Expired["token-alice"] = true

	w := env.do(http.MethodGet, "/api/auth/hello", "alice", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", decodeError(t, w.Body.Bytes()).Error)
}
