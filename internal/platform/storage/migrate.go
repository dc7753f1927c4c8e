package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayakovlev/market-feed-parser/internal/platform/storage/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations applies all pending database schema migrations.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrations.Files(), ".")
	if err != nil {
		return fmt.Errorf("can't read migration files: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("can't prepare database for migrations: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("can't create migrator: %w", err)
	}

	if err = migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("can't apply migrations: %w", err)
	}

	return nil
}
