package db

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starterkit/src/core/domain"
	"starterkit/src/infra/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSQLite(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	database, err := New(context.Background(), config.DatabaseConfig{URL: url}, testLogger())
	require.NoError(t, err)
	defer database.Close()

	assert.Equal(t, domain.BackendSQLite, database.Kind())
	assert.NoError(t, database.Health(context.Background()))

	// SQLite is pinned to a single connection regardless of config.
	assert.Equal(t, 1, database.Stats().MaxOpen)
}

func TestNewInMemory(t *testing.T) {
	database, err := New(context.Background(), config.DatabaseConfig{URL: ":memory:"}, testLogger())
	require.NoError(t, err)
	defer database.Close()

	_, err = database.SQL.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
}

func TestNewRejectsUnknownScheme(t *testing.T) {
	_, err := New(context.Background(), config.DatabaseConfig{URL: "mysql://localhost/app"}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}
