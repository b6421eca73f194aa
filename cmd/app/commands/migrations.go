package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/assettrack/internal/database"
)

// migrationsPath returns the migration source for driver.
func migrationsPath(driver string) string {
	if driver == database.DriverMySQL {
		return "file://migrations/mysql"
	}
	return "file://migrations/postgresql"
}

// migrateURL turns the connection string the server uses into a golang-migrate database URL.
// MySQL DSNs carry no scheme, so one is added.
func migrateURL(driver, dsn string) (string, error) {
	normalized, err := database.NormalizeDSN(driver, dsn)
	if err != nil {
		return "", err
	}
	if driver == database.DriverMySQL && !strings.HasPrefix(normalized, "mysql://") {
		return "mysql://" + normalized, nil
	}
	return normalized, nil
}

// RunMigrations applies all pending migrations for the configured driver.
// Returns nil when there is nothing to apply.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations", slog.String("driver", dbDriver))

	url, err := migrateURL(dbDriver, dbConnectionString)
	if err != nil {
		return err
	}

	m, err := migrate.New(migrationsPath(dbDriver), url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("migrations completed", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
