package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Username and password limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
)

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. Usernames are unique and
// case-sensitive and cannot be changed after creation.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"`
	Role           Role      `json:"rol"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with role USER and the given credentials.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:  username,
		Password:  password,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "is required", ErrEmptyUsername)
	}
	if n := utf8.RuneCountInString(u.Username); n < MinUsernameLength || n > MaxUsernameLength {
		return NewValidationError("username", "must be between 3 and 50 characters", nil)
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return NewValidationError("password", "must be at least 6 characters", nil)
		}
		if len(u.Password) > MaxPasswordLength {
			return NewValidationError("password", "must be at most 72 bytes", nil)
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from storage carry only the hash.
		return NewValidationError("password", "is required", ErrEmptyPassword)
	}

	if !u.Role.Valid() {
		return NewValidationError("rol", "must be USER or ADMIN", ErrInvalidRole)
	}

	return nil
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
