package db

import (
	"fmt"
	"strings"

	"starterkit/src/core/domain"
)

// DetectBackend picks the relational backend from the connection URL.
//
//	postgres:// or postgresql://  -> PostgreSQL
//	sqlite:// / sqlite3:// / file: / bare path / :memory:  -> SQLite
//
// Any other scheme is rejected at startup.
func DetectBackend(rawURL string) (domain.Backend, error) {
	switch {
	case rawURL == "":
		return domain.BackendUnknown, fmt.Errorf("database URL is empty")
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		return domain.BackendPostgres, nil
	case strings.HasPrefix(rawURL, "sqlite"), strings.HasPrefix(rawURL, "file:"), rawURL == ":memory:":
		return domain.BackendSQLite, nil
	case !strings.Contains(rawURL, "://"):
		// A bare filesystem path such as ./dev.db.
		return domain.BackendSQLite, nil
	default:
		return domain.BackendUnknown, fmt.Errorf("unsupported database URL scheme in %q", rawURL)
	}
}

// driverName maps a backend to its registered database/sql driver.
func driverName(b domain.Backend) string {
	if b == domain.BackendPostgres {
		return "pgx"
	}
	return "sqlite"
}

// dataSourceName converts the configured URL into what the driver expects.
// PostgreSQL URLs pass through unchanged; for SQLite the scheme prefix is
// stripped so only the file path (or :memory:) remains. file: URIs are
// understood by the driver as-is.
func dataSourceName(b domain.Backend, rawURL string) string {
	if b == domain.BackendPostgres {
		return rawURL
	}
	for _, prefix := range []string{"sqlite3://", "sqlite://", "sqlite3:", "sqlite:"} {
		if strings.HasPrefix(rawURL, prefix) {
			return strings.TrimPrefix(rawURL, prefix)
		}
	}
	return rawURL
}
