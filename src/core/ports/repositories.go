// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"starterkit/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// DiagnosticsRepository exposes the schema introspection primitives the
// diagnostic endpoints are built on. All table-scoped methods return a
// domain not-found error when the named table does not exist in the
// backend catalog.
type DiagnosticsRepository interface {
	Repository

	// Backend reports which relational backend the repository runs against.
	Backend() domain.Backend

	// PoolStats returns a snapshot of the connection pool.
	PoolStats() domain.PoolStats

	// ListTables returns all user table names, sorted ascending.
	ListTables(ctx context.Context) ([]string, error)

	// TableExists checks the catalog for a user table with the given name.
	TableExists(ctx context.Context, table string) (bool, error)

	// CountRows returns the row count of a table.
	CountRows(ctx context.Context, table string) (int64, error)

	// Columns returns column descriptions in definition order.
	Columns(ctx context.Context, table string) ([]domain.Column, error)

	// Indexes returns the table's indexes, sorted by name.
	Indexes(ctx context.Context, table string) ([]domain.Index, error)

	// MaxID returns MAX(id) for the table, or 0 when the table is empty.
	MaxID(ctx context.Context, table string) (int64, error)

	// SequenceValue returns the last value of the table's id sequence.
	// Only valid on backends that support sequences.
	SequenceValue(ctx context.Context, table string) (int64, error)

	// ResetSequence restarts the table's id sequence at the given value.
	// Only valid on backends that support sequences.
	ResetSequence(ctx context.Context, table string, restartWith int64) error
}
