// Package db provides database connection management for the two supported
// backends: PostgreSQL for production and SQLite for development. Both are
// driven through database/sql so the rest of the application never branches
// on the backend for plain queries.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver
	_ "modernc.org/sqlite"             // registers the pure-Go sqlite driver

	"starterkit/src/core/domain"
	"starterkit/src/infra/config"
)

// DB wraps a database/sql handle with the detected backend kind.
type DB struct {
	SQL  *sql.DB
	kind domain.Backend
	log  *slog.Logger
}

// New opens a connection pool for the configured URL and validates it with
// a ping. Pool sizing depends on the backend: SQLite is pinned to a single
// connection (it has one writer, and an in-memory database lives and dies
// with its connection), PostgreSQL uses the configured pool settings.
func New(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*DB, error) {
	kind, err := DetectBackend(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to detect database backend: %w", err)
	}

	handle, err := sql.Open(driverName(kind), dataSourceName(kind, cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch kind {
	case domain.BackendSQLite:
		handle.SetMaxOpenConns(1)
		handle.SetMaxIdleConns(1)
		handle.SetConnMaxLifetime(0)
	default:
		handle.SetMaxOpenConns(cfg.MaxOpenConns)
		handle.SetMaxIdleConns(cfg.MaxIdleConns)
		handle.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Verify connection
	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if kind == domain.BackendSQLite {
		log.Warn("using SQLite backend, for development only",
			"url", cfg.Redacted(),
		)
	} else {
		log.Info("database connection established",
			"backend", kind.String(),
			"url", cfg.Redacted(),
			"max_open_conns", cfg.MaxOpenConns,
		)
	}

	return &DB{
		SQL:  handle,
		kind: kind,
		log:  log,
	}, nil
}

// Kind reports which backend the handle is connected to.
func (d *DB) Kind() domain.Backend {
	return d.kind
}

// Health checks if the database is reachable.
// Returns nil if healthy, error otherwise.
func (d *DB) Health(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

// Stats returns a snapshot of the connection pool.
func (d *DB) Stats() domain.PoolStats {
	s := d.SQL.Stats()
	return domain.PoolStats{
		MaxOpen: s.MaxOpenConnections,
		Open:    s.OpenConnections,
		InUse:   s.InUse,
		Idle:    s.Idle,
		Waits:   s.WaitCount,
	}
}

// Close closes the connection pool.
// Call this during graceful shutdown.
func (d *DB) Close() {
	if d.SQL != nil {
		_ = d.SQL.Close()
		d.log.Info("database connection closed")
	}
}
