package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations brings the pending-rows schema up to date. It opens
// its own connection so the repository pool never sees a half-migrated
// database.
func RunMigrations(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer db.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		slog.Debug("Schema already up to date", "path", dbPath)
	case err != nil:
		return fmt.Errorf("run migrations: %w", err)
	default:
		version, dirty, verr := m.Version()
		if verr != nil {
			return fmt.Errorf("read schema version: %w", verr)
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty after migration", version)
		}
		slog.Info("Schema migrated", "path", dbPath, "version", version)
	}
	return nil
}
