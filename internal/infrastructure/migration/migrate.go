package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/paulmaker/office-mgmt/migrations"
	"go.uber.org/zap"
)

// Runner applies the embedded SQL migrations against Postgres
type Runner struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New creates a Runner bound to the given database connection. The
// migration sources come from the embedded migrations filesystem, so no
// external directory is needed at runtime.
func New(db *sql.DB, logger *zap.Logger) (*Runner, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Runner{m: m, logger: logger}, nil
}

// Up applies all pending migrations
func (r *Runner) Up() error {
	err := r.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := r.m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	r.logger.Info("Schema migrated",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back every applied migration
func (r *Runner) Down() error {
	err := r.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	r.logger.Info("Schema rolled back")
	return nil
}

// Steps applies n migrations; negative n rolls back
func (r *Runner) Steps(n int) error {
	err := r.m.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %d steps: %w", n, err)
	}
	return nil
}

// Version reports the current schema version. A database with no
// applied migrations reports version 0 and no error.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded schema version. Only for recovering a
// dirty database after a failed migration.
func (r *Runner) Force(version int) error {
	r.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Close releases the migration source and database handles
func (r *Runner) Close() error {
	sourceErr, dbErr := r.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}
