// Package app is the application bootstrap and dependency injection root.
// It creates and holds all shared infrastructure (DB pool, Redis client,
// Echo instance) and wires together all plugins.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/config"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/middleware"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/suggestions"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/validation"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// DB is the MySQL connection pool shared by all plugins.
	DB *sql.DB

	// Redis is the optional Redis client used for rate limit counters.
	// Nil when REDIS_URL is unset.
	Redis *redis.Client

	// Generator drafts class descriptions. Nil when no API key is set.
	Generator suggestions.TextGenerator

	// Echo is the HTTP server instance.
	Echo *echo.Echo

	// ctx scopes background work such as the in-memory limiter sweeps.
	ctx context.Context
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling. ctx bounds
// background goroutines started while wiring routes.
func New(ctx context.Context, cfg *config.Config, db *sql.DB, rdb *redis.Client, gen suggestions.TextGenerator) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	// c.RealIP() must return the client, not the proxy, because rate
	// limits key on it.
	middleware.TrustedProxies(e, cfg.TrustedProxies)

	e.Validator = validation.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler

	app := &App{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Generator: gen,
		Echo:      e,
		ctx:       ctx,
	}

	app.setupMiddleware()

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: the request ID must exist before the logger reads it, and
// recovery sits inside the logger so recovered panics are logged as 500s.
func (a *App) setupMiddleware() {
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(middleware.RequestLogger())
	a.Echo.Use(middleware.Recovery())

	// API-only security headers.
	a.Echo.Use(middleware.SecurityHeaders())

	// CORS for the web and mobile clients. Tokens travel in the
	// Authorization header, so no credentials are needed.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: a.Config.AllowedOrigins,
	}))
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting farol server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}
