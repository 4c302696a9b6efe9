package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"lingo-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// NewMigrator builds a golang-migrate instance reading files from dir inside fsys.
func NewMigrator(db *sql.DB, fsys fs.FS, dir string) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending up migration. An up-to-date schema is not an error.
func RunMigrations(db *sql.DB, fsys fs.FS, dir string) error {
	m, err := NewMigrator(db, fsys, dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", err)
	}
	logger.Get().Info("Migrations completed", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
