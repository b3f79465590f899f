package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"starterkit/src/core/domain"
	"starterkit/src/core/ports"
	"starterkit/src/infra/db"
)

// Compile-time check that the adapter satisfies its port.
var _ ports.DiagnosticsRepository = (*SQLRepository)(nil)

// SQLRepository implements ports.DiagnosticsRepository over database/sql.
type SQLRepository struct {
	db  *db.DB
	log *slog.Logger
}

// NewSQLRepository constructs a diagnostics repository over the shared handle.
func NewSQLRepository(database *db.DB, log *slog.Logger) *SQLRepository {
	return &SQLRepository{
		db:  database,
		log: log,
	}
}

// Health checks if the database is reachable.
func (r *SQLRepository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

// Backend reports the connected backend kind.
func (r *SQLRepository) Backend() domain.Backend {
	return r.db.Kind()
}

// PoolStats returns a snapshot of the connection pool.
func (r *SQLRepository) PoolStats() domain.PoolStats {
	return r.db.Stats()
}

// quoteIdent double-quotes an identifier so it can be interpolated into
// statements that do not accept bind parameters in identifier position
// (COUNT/MAX targets, ALTER SEQUENCE). Callers must still verify the name
// against the catalog first; see requireTable.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// requireTable rejects table names that are not present in the catalog.
// Every query that interpolates a table name goes through this, so only
// catalog-verified identifiers ever reach SQL text.
func (r *SQLRepository) requireTable(ctx context.Context, table string) error {
	ok, err := r.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError(fmt.Sprintf("table %q", table))
	}
	return nil
}

// ListTables returns all user table names, sorted ascending.
func (r *SQLRepository) ListTables(ctx context.Context) ([]string, error) {
	var q string
	if r.Backend() == domain.BackendPostgres {
		q = `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
			ORDER BY table_name
		`
	} else {
		q = `
			SELECT name
			FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name
		`
	}

	rows, err := r.db.SQL.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableExists checks the catalog for a user table with the given name.
func (r *SQLRepository) TableExists(ctx context.Context, table string) (bool, error) {
	var q string
	if r.Backend() == domain.BackendPostgres {
		q = `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_type = 'BASE TABLE' AND table_name = $1
			)
		`
	} else {
		q = `
			SELECT EXISTS (
				SELECT 1 FROM sqlite_master
				WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name = ?
			)
		`
	}

	var exists bool
	if err := r.db.SQL.QueryRowContext(ctx, q, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("check table %q: %w", table, err)
	}
	return exists, nil
}

// CountRows returns the row count of a table.
func (r *SQLRepository) CountRows(ctx context.Context, table string) (int64, error) {
	if err := r.requireTable(ctx, table); err != nil {
		return 0, err
	}

	var count int64
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteIdent(table))
	if err := r.db.SQL.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows of %q: %w", table, err)
	}
	return count, nil
}

// Columns returns column descriptions in definition order.
func (r *SQLRepository) Columns(ctx context.Context, table string) ([]domain.Column, error) {
	if err := r.requireTable(ctx, table); err != nil {
		return nil, err
	}
	if r.Backend() == domain.BackendPostgres {
		return r.postgresColumns(ctx, table)
	}
	return r.sqliteColumns(ctx, table)
}

func (r *SQLRepository) postgresColumns(ctx context.Context, table string) ([]domain.Column, error) {
	const q = `
		SELECT column_name, data_type, is_nullable = 'YES', column_default
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`
	rows, err := r.db.SQL.QueryContext(ctx, q, table)
	if err != nil {
		return nil, fmt.Errorf("columns of %q: %w", table, err)
	}
	defer rows.Close()

	var cols []domain.Column
	for rows.Next() {
		var (
			c   domain.Column
			def sql.NullString
		)
		if err := rows.Scan(&c.Name, &c.Type, &c.Nullable, &def); err != nil {
			return nil, err
		}
		if def.Valid {
			c.Default = &def.String
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (r *SQLRepository) sqliteColumns(ctx context.Context, table string) ([]domain.Column, error) {
	const q = `SELECT name, type, "notnull", dflt_value FROM pragma_table_info(?) ORDER BY cid`
	rows, err := r.db.SQL.QueryContext(ctx, q, table)
	if err != nil {
		return nil, fmt.Errorf("columns of %q: %w", table, err)
	}
	defer rows.Close()

	var cols []domain.Column
	for rows.Next() {
		var (
			c       domain.Column
			notNull int
			def     sql.NullString
		)
		if err := rows.Scan(&c.Name, &c.Type, &notNull, &def); err != nil {
			return nil, err
		}
		c.Nullable = notNull == 0
		if def.Valid {
			c.Default = &def.String
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// Indexes returns the table's indexes, sorted by name.
func (r *SQLRepository) Indexes(ctx context.Context, table string) ([]domain.Index, error) {
	if err := r.requireTable(ctx, table); err != nil {
		return nil, err
	}
	if r.Backend() == domain.BackendPostgres {
		return r.postgresIndexes(ctx, table)
	}
	return r.sqliteIndexes(ctx, table)
}

func (r *SQLRepository) postgresIndexes(ctx context.Context, table string) ([]domain.Index, error) {
	// One row per index column, in key order, so the column list can be
	// rebuilt without scanning a postgres array through database/sql.
	const q = `
		SELECT i.relname, ix.indisunique, a.attname
		FROM pg_index ix
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_class t ON t.oid = ix.indrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN generate_subscripts(ix.indkey, 1) s(ord) ON true
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ix.indkey[s.ord]
		WHERE n.nspname = 'public' AND t.relname = $1
		ORDER BY i.relname, s.ord
	`
	rows, err := r.db.SQL.QueryContext(ctx, q, table)
	if err != nil {
		return nil, fmt.Errorf("indexes of %q: %w", table, err)
	}
	defer rows.Close()

	var indexes []domain.Index
	for rows.Next() {
		var (
			name   string
			unique bool
			column string
		)
		if err := rows.Scan(&name, &unique, &column); err != nil {
			return nil, err
		}
		if n := len(indexes); n > 0 && indexes[n-1].Name == name {
			indexes[n-1].Columns = append(indexes[n-1].Columns, column)
			continue
		}
		indexes = append(indexes, domain.Index{
			Name:    name,
			Columns: []string{column},
			Unique:  unique,
		})
	}
	return indexes, rows.Err()
}

func (r *SQLRepository) sqliteIndexes(ctx context.Context, table string) ([]domain.Index, error) {
	const listQ = `SELECT name, "unique" FROM pragma_index_list(?) ORDER BY name`
	rows, err := r.db.SQL.QueryContext(ctx, listQ, table)
	if err != nil {
		return nil, fmt.Errorf("indexes of %q: %w", table, err)
	}

	var indexes []domain.Index
	for rows.Next() {
		var (
			idx    domain.Index
			unique int
		)
		if err := rows.Scan(&idx.Name, &unique); err != nil {
			rows.Close()
			return nil, err
		}
		idx.Unique = unique == 1
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	const infoQ = `SELECT name FROM pragma_index_info(?) ORDER BY seqno`
	for i := range indexes {
		colRows, err := r.db.SQL.QueryContext(ctx, infoQ, indexes[i].Name)
		if err != nil {
			return nil, fmt.Errorf("index columns of %q: %w", indexes[i].Name, err)
		}
		for colRows.Next() {
			var column string
			if err := colRows.Scan(&column); err != nil {
				colRows.Close()
				return nil, err
			}
			indexes[i].Columns = append(indexes[i].Columns, column)
		}
		if err := colRows.Err(); err != nil {
			colRows.Close()
			return nil, err
		}
		colRows.Close()
	}
	return indexes, nil
}

// MaxID returns MAX(id) for the table, or 0 when the table is empty.
func (r *SQLRepository) MaxID(ctx context.Context, table string) (int64, error) {
	if err := r.requireTable(ctx, table); err != nil {
		return 0, err
	}

	var maxID sql.NullInt64
	q := fmt.Sprintf(`SELECT MAX(%s) FROM %s`,
		quoteIdent(domain.PrimaryKeyColumn), quoteIdent(table))
	if err := r.db.SQL.QueryRowContext(ctx, q).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("max id of %q: %w", table, err)
	}
	// MAX over an empty table is NULL; report it as 0 so the sequence
	// comparison still works.
	return maxID.Int64, nil
}

// SequenceValue returns last_value of the table's id sequence.
func (r *SQLRepository) SequenceValue(ctx context.Context, table string) (int64, error) {
	if !r.Backend().SupportsSequences() {
		return 0, domain.NewUnsupportedError("sequences require the PostgreSQL backend")
	}
	if err := r.requireTable(ctx, table); err != nil {
		return 0, err
	}

	var lastValue int64
	q := fmt.Sprintf(`SELECT last_value FROM %s`, quoteIdent(domain.SequenceName(table)))
	if err := r.db.SQL.QueryRowContext(ctx, q).Scan(&lastValue); err != nil {
		return 0, fmt.Errorf("sequence value of %q: %w", domain.SequenceName(table), err)
	}
	return lastValue, nil
}

// ResetSequence restarts the table's id sequence at the given value.
func (r *SQLRepository) ResetSequence(ctx context.Context, table string, restartWith int64) error {
	if !r.Backend().SupportsSequences() {
		return domain.NewUnsupportedError("sequences require the PostgreSQL backend")
	}
	if err := r.requireTable(ctx, table); err != nil {
		return err
	}

	q := fmt.Sprintf(`ALTER SEQUENCE %s RESTART WITH %d`,
		quoteIdent(domain.SequenceName(table)), restartWith)
	if _, err := r.db.SQL.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("reset sequence of %q: %w", table, err)
	}

	r.log.Info("sequence restarted",
		"table", table,
		"restart_with", restartWith,
	)
	return nil
}
