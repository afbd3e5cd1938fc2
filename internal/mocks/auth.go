package mocks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
// By default a token is "token-<subject>" and validates for that subject;
// tokens listed in Expired decode but never validate.
type MockTokenService struct {
	IssueFn          func(ctx context.Context, subject string) (*auth.Token, error)
	ValidateFn       func(ctx context.Context, token, expectedSubject string) bool
	ExtractSubjectFn func(ctx context.Context, token string) (string, error)

	Lifetime time.Duration
	Expired  map[string]bool
}

var _ auth.TokenService = (*MockTokenService)(nil)

const mockTokenPrefix = "token-"

// Issue implements auth.TokenService
func (m *MockTokenService) Issue(ctx context.Context, subject string) (*auth.Token, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, subject)
	}
	lifetime := m.Lifetime
	if lifetime == 0 {
		lifetime = time.Hour
	}
	now := time.Now().UTC().Truncate(time.Second)
	return &auth.Token{
		Value:     mockTokenPrefix + subject,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now.Add(lifetime),
		ID:        "jti-" + subject,
	}, nil
}

// Validate implements auth.TokenService
func (m *MockTokenService) Validate(ctx context.Context, token, expectedSubject string) bool {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token, expectedSubject)
	}
	if m.Expired[token] {
		return false
	}
	return expectedSubject != "" && token == mockTokenPrefix+expectedSubject
}

// ExtractSubject implements auth.TokenService
func (m *MockTokenService) ExtractSubject(ctx context.Context, token string) (string, error) {
	if m.ExtractSubjectFn != nil {
		return m.ExtractSubjectFn(ctx, token)
	}
	subject, ok := strings.CutPrefix(token, mockTokenPrefix)
	if !ok || subject == "" {
		return "", errors.Join(auth.ErrDecode, errors.New("not a mock token"))
	}
	return subject, nil
}

// MockPasswordHasher implements auth.PasswordHasher with a reversible
// "hashed:" prefix.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// ErrMismatch is returned by MockPasswordHasher.Compare on a wrong password.
var ErrMismatch = errors.New("mock: password mismatch")

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordHasher
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return ErrMismatch
	}
	return nil
}
