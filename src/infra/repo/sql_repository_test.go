package repo

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
	"starterkit/src/infra/db"
)

// newTestRepo opens a fresh SQLite database with a small schema and
// returns a repository over it.
func newTestRepo(t *testing.T) *SQLRepository {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	url := "sqlite://" + filepath.Join(t.TempDir(), "repo_test.db")
	database, err := db.New(context.Background(), config.DatabaseConfig{URL: url}, log)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	const schema = `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			email TEXT NOT NULL,
			nickname TEXT DEFAULT 'anon'
		);
		CREATE UNIQUE INDEX idx_users_email ON users (email);
		CREATE TABLE articles (
			id INTEGER PRIMARY KEY,
			author_id INTEGER NOT NULL,
			title TEXT NOT NULL
		);
		CREATE INDEX idx_articles_author ON articles (author_id, title);
	`
	_, err = database.SQL.Exec(schema)
	require.NoError(t, err)

	return NewSQLRepository(database, log)
}

func TestBackendAndHealth(t *testing.T) {
	r := newTestRepo(t)

	assert.Equal(t, domain.BackendSQLite, r.Backend())
	assert.NoError(t, r.Health(context.Background()))
	assert.Equal(t, 1, r.PoolStats().MaxOpen)
}

func TestListTables(t *testing.T) {
	r := newTestRepo(t)

	tables, err := r.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"articles", "users"}, tables)
}

func TestTableExists(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	ok, err := r.TableExists(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.TableExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	// Internal sqlite tables are never reported.
	ok, err = r.TableExists(ctx, "sqlite_master")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCountRows(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	count, err := r.CountRows(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = r.db.SQL.Exec(`INSERT INTO users (email) VALUES ('a@b.c'), ('d@e.f')`)
	require.NoError(t, err)

	count, err = r.CountRows(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = r.CountRows(ctx, "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestColumns(t *testing.T) {
	r := newTestRepo(t)

	cols, err := r.Columns(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, cols, 3)

	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, "INTEGER", cols[0].Type)

	assert.Equal(t, "email", cols[1].Name)
	assert.False(t, cols[1].Nullable)
	assert.Nil(t, cols[1].Default)

	assert.Equal(t, "nickname", cols[2].Name)
	assert.True(t, cols[2].Nullable)
	require.NotNil(t, cols[2].Default)
	assert.Equal(t, "'anon'", *cols[2].Default)
}

func TestIndexes(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	indexes, err := r.Indexes(ctx, "users")
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, "idx_users_email", indexes[0].Name)
	assert.Equal(t, []string{"email"}, indexes[0].Columns)
	assert.True(t, indexes[0].Unique)

	indexes, err = r.Indexes(ctx, "articles")
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, []string{"author_id", "title"}, indexes[0].Columns)
	assert.False(t, indexes[0].Unique)
}

func TestMaxID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	// Empty table reports 0, not an error.
	maxID, err := r.MaxID(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, int64(0), maxID)

	_, err = r.db.SQL.Exec(`INSERT INTO users (id, email) VALUES (7, 'a@b.c'), (42, 'd@e.f')`)
	require.NoError(t, err)

	maxID, err = r.MaxID(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, int64(42), maxID)
}

func TestSequenceOpsUnsupportedOnSQLite(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.SequenceValue(ctx, "users")
	assert.True(t, domain.IsUnsupported(err))

	err = r.ResetSequence(ctx, "users", 43)
	assert.True(t, domain.IsUnsupported(err))
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"users"`, quoteIdent("users"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
