package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"

	// File source driver for reading migration files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirtySchema means a previous migration failed halfway. The schema has
// to be repaired by hand and the version forced before the server can boot.
var ErrDirtySchema = errors.New("schema is dirty")

// RunMigrations brings the schema in db up to the newest file under
// migrationsPath. It refuses to run on a dirty schema instead of applying
// later files on top of a half-applied one.
func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	from, err := schemaVersion(m.Version())
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating from version %d: %w", from, err)
	}

	to, err := schemaVersion(m.Version())
	if err != nil {
		return err
	}

	if to == from {
		slog.Info("schema up to date", slog.Uint64("version", uint64(to)))
	} else {
		slog.Info("schema migrated",
			slog.Uint64("from", uint64(from)),
			slog.Uint64("to", uint64(to)),
		)
	}
	return nil
}

// schemaVersion interprets migrate.Version results. An empty database is
// version 0.
func schemaVersion(version uint, dirty bool, err error) (uint, error) {
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("version %d: %w", version, ErrDirtySchema)
	}
	return version, nil
}
