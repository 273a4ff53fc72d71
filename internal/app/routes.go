package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/middleware"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/accounts"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/bookings"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/catalog"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/suggestions"
)

// Per-IP limits for the credential endpoints.
const (
	loginAttemptsPerMinute = 10
	registerPerMinute      = 5
)

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to each plugin's route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for container orchestration.
	e.GET("/healthz", a.healthz)

	// --- Shared collaborators ---
	tokens := auth.NewTokenService(a.Config.Auth.SecretKey, a.Config.Auth.TokenTTL)
	requireAuth := auth.RequireAuth(tokens)

	// --- Account directory ---
	accountRepo := accounts.NewAccountRepository(a.DB)
	accountService := accounts.NewAccountService(accountRepo, auth.DefaultArgon2Hasher(), tokens)
	accounts.RegisterRoutes(e, accounts.NewHandler(accountService), requireAuth, accounts.RouteLimits{
		Login:    middleware.RateLimit(a.limiter("login", loginAttemptsPerMinute, time.Minute)),
		Register: middleware.RateLimit(a.limiter("register", registerPerMinute, time.Minute)),
	})

	// --- Catalog and class writes ---
	classRepo := catalog.NewClassRepository(a.DB)
	catalog.RegisterRoutes(e, catalog.NewHandler(catalog.NewCatalogService(classRepo)), requireAuth)

	// --- Booking ledger ---
	bookingRepo := bookings.NewBookingRepository(a.DB)
	bookings.RegisterRoutes(e, bookings.NewHandler(bookings.NewBookingService(bookingRepo, accountService)), requireAuth)

	// --- Suggestions ---
	suggestions.RegisterRoutes(e, suggestions.NewHandler(suggestions.NewSuggestionService(a.Generator)), requireAuth)
}

// limiter returns a Redis-backed limiter when Redis is configured so counts
// are shared across instances, and a per-process one otherwise.
func (a *App) limiter(name string, max int, window time.Duration) middleware.Limiter {
	if a.Redis != nil {
		return middleware.NewRedisLimiter(a.Redis, "ratelimit:"+name, max, window)
	}
	return middleware.NewMemoryLimiter(a.ctx, max, window)
}

// healthz reports whether MySQL and, when configured, Redis answer a ping.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok"}
	healthy := true

	if err := a.DB.PingContext(ctx); err != nil {
		slog.Warn("health check: database unreachable", slog.Any("error", err))
		status["database"] = "unreachable"
		healthy = false
	}
	if a.Redis != nil {
		status["redis"] = "ok"
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			slog.Warn("health check: redis unreachable", slog.Any("error", err))
			status["redis"] = "unreachable"
			healthy = false
		}
	}

	if !healthy {
		status["status"] = "degraded"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	return c.JSON(http.StatusOK, status)
}
