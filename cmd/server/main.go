// Package main is the entry point for the farol API server. It loads
// configuration, establishes database connections, wires together all
// plugins, and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/app"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/config"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/database"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/suggestions"
)

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Configure structured logging based on environment.
	setupLogging(cfg)

	slog.Info("starting farol",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
	)

	// ctx is cancelled on SIGINT/SIGTERM and stops background goroutines.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to MySQL ---
	db, err := database.NewMySQL(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to MySQL", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to MySQL")

	if err := database.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
		slog.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Connect to Redis (optional) ---
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			slog.Error("failed to connect to Redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		slog.Info("connected to Redis")
	} else {
		slog.Info("REDIS_URL not set; rate limits are per process")
	}

	// --- Text generation (optional) ---
	var generator suggestions.TextGenerator
	if cfg.Suggestions.Enabled() {
		gemini, err := suggestions.NewGeminiGenerator(ctx, cfg.Suggestions.APIKey, cfg.Suggestions.Model)
		if err != nil {
			slog.Error("failed to create text generator", slog.Any("error", err))
			os.Exit(1)
		}
		defer gemini.Close()
		generator = gemini
	} else {
		slog.Info("GEMINI_API_KEY not set; suggestions disabled")
	}

	// --- Create Application ---
	application := app.New(ctx, cfg, db, rdb, generator)
	application.RegisterRoutes()

	// --- Graceful Shutdown ---
	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")

		// Give in-flight requests 10 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Echo.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// setupLogging configures the global slog logger based on the environment.
// Development uses text format for readability. Production uses JSON for
// structured log aggregation.
func setupLogging(cfg *config.Config) {
	var handler slog.Handler

	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	slog.SetDefault(slog.New(handler))
}
