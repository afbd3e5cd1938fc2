package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

const requestTimeout = 30 * time.Second

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	authn := apiMiddleware.NewAuthenticator(app.tokenService, app.userStore)
	api.MountRoutes(r, app.handlers(), authn, apiMiddleware.DefaultRules())

	r.Method(http.MethodGet, "/health", api.NewHealthHandler(app.db))

	return r
}
