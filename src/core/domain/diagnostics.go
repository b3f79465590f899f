package domain

// Backend identifies which relational backend the application is connected to.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendUnknown  Backend = "unknown"
)

// String returns the backend name for logging and JSON payloads.
func (b Backend) String() string {
	return string(b)
}

// SupportsSequences reports whether the backend generates primary keys
// from named sequences. Only PostgreSQL does; SQLite uses rowid/AUTOINCREMENT.
func (b Backend) SupportsSequences() bool {
	return b == BackendPostgres
}

// Column describes a single table column as reported by the backend catalog.
type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

// Index describes a single index on a table.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

// SequenceStatus captures the relationship between a table's max primary key
// and its backing sequence. The sequence is considered in sync when its
// last value is strictly greater than the max id, so the next nextval()
// cannot collide with an existing row.
type SequenceStatus struct {
	Table     string
	MaxID     int64
	LastValue int64
}

// InSync reports whether the sequence is ahead of the table's max id.
func (s SequenceStatus) InSync() bool {
	return s.LastValue > s.MaxID
}

// RestartValue is the value the sequence must be restarted with to get
// back in sync after manual inserts.
func (s SequenceStatus) RestartValue() int64 {
	return s.MaxID + 1
}

// PoolStats is a backend-agnostic snapshot of the connection pool.
type PoolStats struct {
	MaxOpen int   `json:"max_open"`
	Open    int   `json:"open"`
	InUse   int   `json:"in_use"`
	Idle    int   `json:"idle"`
	Waits   int64 `json:"waits"`
}
