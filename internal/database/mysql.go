// Package database owns the lifecycle of the shared MySQL pool and the
// optional Redis client: open, configure, ping, migrate, close.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// MySQL driver, registered for database/sql.
	_ "github.com/go-sql-driver/mysql"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/config"
)

// connectAttempts bounds how long startup waits for the database container.
const connectAttempts = 10

// NewMySQL opens the connection pool and waits for the server to answer a
// ping, retrying with exponential backoff while it boots.
func NewMySQL(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mysql connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	backoff := time.Second
	var pingErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pingErr = db.PingContext(pingCtx)
		cancel()
		if pingErr == nil {
			return db, nil
		}
		if attempt == connectAttempts {
			break
		}

		slog.Warn("mysql not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.Any("error", pingErr),
		)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 30*time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("pinging mysql after %d attempts: %w", connectAttempts, pingErr)
}
