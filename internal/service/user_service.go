package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// UserService provides account operations: registration, login and role
// administration.
type UserService interface {
	// Register creates a USER account and returns a token for it.
	// Returns store.ErrUsernameExists if the username is taken; the existing
	// account is left untouched.
	Register(ctx context.Context, username, password string) (*auth.Token, error)

	// Login checks credentials and returns a fresh token.
	// Unknown usernames and wrong passwords both return auth.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*auth.Token, error)

	// Profile returns the account with the given username.
	Profile(ctx context.Context, username string) (*domain.User, error)

	// ListUsers returns all accounts ordered by ID.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// Promote grants ADMIN to the account with the given ID.
	Promote(ctx context.Context, id int64) error

	// ChangeRole sets the role of the account with the given ID. The role
	// name is case-insensitive; anything other than USER or ADMIN is a
	// validation error and nothing is changed.
	ChangeRole(ctx context.Context, id int64, role string) (domain.Role, error)

	// EnsureAdmin creates an ADMIN account with the given credentials if no
	// account with that username exists. It reports whether one was created.
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	tokens auth.TokenService
	hasher auth.PasswordHasher
	db     store.TxBeginner
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	tokens auth.TokenService,
	hasher auth.PasswordHasher,
	db store.TxBeginner,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if users == nil {
		return nil, fmt.Errorf("users store cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		db:     db,
		logger: logger.With("component", "user_service"),
	}, nil
}

// Register implements UserService.
func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*auth.Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.newAccount(username, password, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("registration with existing username", "username", username)
		} else {
			log.Error("failed to save user", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)

	return s.issue(ctx, user.Username)
}

// Login implements UserService.
func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (*auth.Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown username", "username", username)
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to load user for login", "error", err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}

	return s.issue(ctx, user.Username)
}

// Profile implements UserService.
func (s *UserServiceImpl) Profile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}
	return user, nil
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Promote implements UserService.
func (s *UserServiceImpl) Promote(ctx context.Context, id int64) error {
	return s.setRole(ctx, id, domain.RoleAdmin)
}

// ChangeRole implements UserService.
func (s *UserServiceImpl) ChangeRole(ctx context.Context, id int64, role string) (domain.Role, error) {
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return "", err
	}
	if err := s.setRole(ctx, id, parsed); err != nil {
		return "", err
	}
	return parsed, nil
}

// setRole reads and updates the row in one transaction so a concurrent
// delete surfaces as ErrUserNotFound rather than a silent no-op.
func (s *UserServiceImpl) setRole(ctx context.Context, id int64, role domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		user, err := txUsers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.Role == role {
			return nil
		}
		return txUsers.UpdateRole(ctx, id, role)
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to update role", "error", err, "user_id", id)
		}
		return fmt.Errorf("failed to update role: %w", err)
	}

	log.Info("role updated", "user_id", id, "role", role.String())
	return nil
}

// EnsureAdmin implements UserService.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin() {
			log.Warn("bootstrap admin username belongs to a non-admin account; leaving it unchanged",
				"user_id", existing.ID, "role", existing.Role.String())
		}
		return false, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up admin account: %w", err)
	}

	admin, err := s.newAccount(username, password, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// Another instance won the race.
		if errors.Is(err, store.ErrUsernameExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Info("admin account created", "user_id", admin.ID, "username", admin.Username)
	return true, nil
}

func (s *UserServiceImpl) newAccount(username, password string, role domain.Role) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}
	user.Role = role

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	return user, nil
}

func (s *UserServiceImpl) issue(ctx context.Context, username string) (*auth.Token, error) {
	token, err := s.tokens.Issue(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
