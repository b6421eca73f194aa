// Package database provides database connection management and utilities.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const pingTimeout = 5 * time.Second

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect opens a pool for cfg and pings it once.
func Connect(cfg Config) (*sql.DB, error) {
	dsn, err := NormalizeDSN(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NormalizeDSN rejects unknown drivers and forces the MySQL options the repositories rely on:
// DATETIME columns scan into time.Time in UTC.
func NormalizeDSN(driver, dsn string) (string, error) {
	switch driver {
	case DriverPostgres:
		return dsn, nil
	case DriverMySQL:
		parsed, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		parsed.ParseTime = true
		parsed.Loc = time.UTC
		return parsed.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", driver)
	}
}
