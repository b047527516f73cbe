// Package database opens the SQL pool shared by the client, token and quote
// repositories and carries transactions through context.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const defaultPingTimeout = 5 * time.Second

// ErrUnsupportedDriver is returned for any driver other than postgres or mysql.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config holds pool settings for Connect.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration

	// PingTimeout bounds the initial reachability check. Zero means 5s.
	PingTimeout time.Duration
}

// Validate checks the driver and pool bounds before any connection is attempted.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
	if c.ConnectionString == "" {
		return errors.New("database connection string is empty")
	}
	if c.MaxIdleConnections > c.MaxOpenConnections && c.MaxOpenConnections > 0 {
		return fmt.Errorf(
			"max idle connections (%d) exceeds max open connections (%d)",
			c.MaxIdleConnections,
			c.MaxOpenConnections,
		)
	}
	return nil
}

// Connect opens the pool and pings it once. The pool is closed again if the
// ping fails, so callers never receive a half-initialized handle.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	if err := Ping(ctx, db, timeout); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Ping reports whether db answers within timeout. A nil handle is an error.
func Ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if db == nil {
		return errors.New("database is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
