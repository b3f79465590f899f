// Package repo contains adapter implementations of the ports interfaces.
//
// SQLRepository implements ports.DiagnosticsRepository over the shared
// database/sql handle. Each introspection primitive has a PostgreSQL and a
// SQLite variant: PostgreSQL reads information_schema and the pg_catalog,
// SQLite reads sqlite_master and the pragma table-valued functions.
package repo
