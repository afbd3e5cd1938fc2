package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	tokenService auth.TokenService
	userService  service.UserService
	taskService  service.TaskService
}

// newApplication creates the stores and services over an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	app.tokenService = tokens

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userService, err := service.NewUserService(app.userStore, tokens, hasher, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	app.userService = userService

	taskService, err := service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	return app, nil
}

// handlers builds the HTTP handlers for the API routes.
func (app *application) handlers() api.Handlers {
	return api.Handlers{
		Auth:  api.NewAuthHandler(app.userService),
		Tasks: api.NewTaskHandler(app.taskService),
		Users: api.NewUserHandler(app.userService),
		Admin: api.NewAdminHandler(app.userService),
	}
}

// seedAdmin creates the configured admin account if it does not exist yet.
func (app *application) seedAdmin(ctx context.Context) error {
	username := app.config.Auth.AdminUsername
	if username == "" {
		return nil
	}

	created, err := app.userService.EnsureAdmin(ctx, username, app.config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	if created {
		app.logger.Info("seeded admin account", "username", username)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
