package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"starterkit/src/core/domain"
	"starterkit/src/core/ports"
)

// DiagnosticsService implements the database and environment diagnostics
// behind the debug endpoints. It only reads existing introspection data;
// the single mutating operation is FixSequence.
type DiagnosticsService struct {
	repo        ports.DiagnosticsRepository
	environment string
	appVersion  string
	envVars     []string
	log         *slog.Logger
}

// NewDiagnosticsService creates a new DiagnosticsService. envVars is the
// list of environment variable names whose presence (never value) is
// reported by EnvCheck.
func NewDiagnosticsService(repo ports.DiagnosticsRepository, environment, appVersion string, envVars []string, log *slog.Logger) *DiagnosticsService {
	return &DiagnosticsService{
		repo:        repo,
		environment: environment,
		appVersion:  appVersion,
		envVars:     envVars,
		log:         log,
	}
}

// DBCheckReport is the payload of /db-check.
type DBCheckReport struct {
	Connected      bool             `json:"connected"`
	DatabaseURLSet bool             `json:"database_url_set"`
	TableCount     int              `json:"table_count"`
	Tables         []string         `json:"tables"`
	Pool           domain.PoolStats `json:"pool"`
	Error          string           `json:"error,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

// DBCheck pings the database and lists its tables. Connectivity failures
// are reported inside the payload rather than as an error: the endpoint
// exists precisely to debug a broken database from the outside.
func (s *DiagnosticsService) DBCheck(ctx context.Context) *DBCheckReport {
	report := &DBCheckReport{
		DatabaseURLSet: envIsSet("DATABASE_URL"),
		Pool:           s.repo.PoolStats(),
		Timestamp:      time.Now().UTC(),
	}

	if err := s.repo.Health(ctx); err != nil {
		s.log.Warn("db-check ping failed", "error", err)
		report.Error = err.Error()
		return report
	}

	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		s.log.Warn("db-check table listing failed", "error", err)
		report.Error = err.Error()
		return report
	}

	report.Connected = true
	report.TableCount = len(tables)
	report.Tables = tables
	return report
}

// EnvReport is the payload of /env-check.
type EnvReport struct {
	Environment string          `json:"environment"`
	Variables   map[string]bool `json:"variables"`
	Timestamp   time.Time       `json:"timestamp"`
}

// EnvCheck reports which of the configured environment variables are set.
// Only presence is exposed, never values, so the endpoint is safe to leave
// reachable in production.
func (s *DiagnosticsService) EnvCheck() *EnvReport {
	vars := make(map[string]bool, len(s.envVars))
	for _, name := range s.envVars {
		vars[name] = envIsSet(name)
	}
	return &EnvReport{
		Environment: s.environment,
		Variables:   vars,
		Timestamp:   time.Now().UTC(),
	}
}

// TableReport is the payload of /table-info/:table.
type TableReport struct {
	TableName   string          `json:"table_name"`
	RowCount    int64           `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Columns     []domain.Column `json:"columns"`
	Indexes     []domain.Index  `json:"indexes"`
	Timestamp   time.Time       `json:"timestamp"`
}

// TableInfo returns schema and size details for one table. Returns a
// domain not-found error when the table does not exist.
func (s *DiagnosticsService) TableInfo(ctx context.Context, table string) (*TableReport, error) {
	rowCount, err := s.repo.CountRows(ctx, table)
	if err != nil {
		return nil, err
	}
	columns, err := s.repo.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	indexes, err := s.repo.Indexes(ctx, table)
	if err != nil {
		return nil, err
	}

	return &TableReport{
		TableName:   table,
		RowCount:    rowCount,
		ColumnCount: len(columns),
		Columns:     columns,
		Indexes:     indexes,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// SequenceReport is the payload of /sequence-check/:table.
//
// The numeric and boolean fields are pointers so the not-applicable
// payload (SQLite backend) omits them instead of reporting zero values.
type SequenceReport struct {
	TableName         string    `json:"table_name,omitempty"`
	MaxID             *int64    `json:"max_id,omitempty"`
	NextSequenceValue *int64    `json:"next_sequence_value,omitempty"`
	InSync            *bool     `json:"in_sync,omitempty"`
	NeedsFix          *bool     `json:"needs_fix,omitempty"`
	FixCommand        string    `json:"fix_command,omitempty"`
	Error             string    `json:"error,omitempty"`
	DatabaseType      string    `json:"database_type,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// SequenceCheck compares a table's id sequence against its max id.
// On a backend without sequences it returns a not-applicable payload
// instead of an error, mirroring the read-only spirit of the endpoint.
func (s *DiagnosticsService) SequenceCheck(ctx context.Context, table string) (*SequenceReport, error) {
	if !s.repo.Backend().SupportsSequences() {
		return &SequenceReport{
			Error:        "sequence check only applicable to PostgreSQL",
			DatabaseType: s.repo.Backend().String(),
			Timestamp:    time.Now().UTC(),
		}, nil
	}

	maxID, err := s.repo.MaxID(ctx, table)
	if err != nil {
		return nil, err
	}
	lastValue, err := s.repo.SequenceValue(ctx, table)
	if err != nil {
		return nil, err
	}

	status := domain.SequenceStatus{Table: table, MaxID: maxID, LastValue: lastValue}
	inSync := status.InSync()
	needsFix := !inSync
	report := &SequenceReport{
		TableName:         table,
		MaxID:             &status.MaxID,
		NextSequenceValue: &status.LastValue,
		InSync:            &inSync,
		NeedsFix:          &needsFix,
		Timestamp:         time.Now().UTC(),
	}
	if needsFix {
		report.FixCommand = fmt.Sprintf(`ALTER SEQUENCE %s RESTART WITH %d;`,
			domain.SequenceName(table), status.RestartValue())
	}
	return report, nil
}

// SequenceFixReport is the payload of /sequence-fix/:table.
type SequenceFixReport struct {
	TableName   string    `json:"table_name"`
	MaxID       int64     `json:"max_id"`
	RestartedAt int64     `json:"restarted_at"`
	Timestamp   time.Time `json:"timestamp"`
}

// FixSequence restarts the table's id sequence at max id + 1, recovering
// from manual inserts that left the sequence behind. Unlike SequenceCheck
// this mutates state, so on a backend without sequences it fails with a
// validation error instead of reporting.
func (s *DiagnosticsService) FixSequence(ctx context.Context, table string) (*SequenceFixReport, error) {
	if !s.repo.Backend().SupportsSequences() {
		return nil, domain.NewValidationError("table",
			"sequence fix only applicable to PostgreSQL")
	}

	maxID, err := s.repo.MaxID(ctx, table)
	if err != nil {
		return nil, err
	}

	restartWith := maxID + 1
	if err := s.repo.ResetSequence(ctx, table, restartWith); err != nil {
		return nil, err
	}

	s.log.Info("sequence fixed", "table", table, "restarted_at", restartWith)
	return &SequenceFixReport{
		TableName:   table,
		MaxID:       maxID,
		RestartedAt: restartWith,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// VersionReport is the payload of /version.
type VersionReport struct {
	AppVersion   string    `json:"app_version"`
	GoVersion    string    `json:"go_version"`
	DatabaseType string    `json:"database_type"`
	Environment  string    `json:"environment"`
	Timestamp    time.Time `json:"timestamp"`
}

// Version returns deployment version information.
func (s *DiagnosticsService) Version() *VersionReport {
	return &VersionReport{
		AppVersion:   s.appVersion,
		GoVersion:    runtime.Version(),
		DatabaseType: s.repo.Backend().String(),
		Environment:  s.environment,
		Timestamp:    time.Now().UTC(),
	}
}

func envIsSet(name string) bool {
	return os.Getenv(name) != ""
}
