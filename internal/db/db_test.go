package db

import (
	"database/sql"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// columns returns table -> sorted column names for every user table.
func columns(t *testing.T, conn *sql.DB) map[string][]string {
	t.Helper()
	rows, err := conn.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	require.NoError(t, err)
	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Close())

	out := map[string][]string{}
	for _, table := range tables {
		cols, err := conn.Query("SELECT name FROM pragma_table_info(?)", table)
		require.NoError(t, err)
		for cols.Next() {
			var name string
			require.NoError(t, cols.Scan(&name))
			out[table] = append(out[table], name)
		}
		require.NoError(t, cols.Close())
		sort.Strings(out[table])
	}
	return out
}

func TestInitSchema_FreshInstallMarksAllMigrations(t *testing.T) {
	conn := openMemory(t)
	require.NoError(t, InitSchema(conn))

	v, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion(), v)

	// Idempotent on an up-to-date database
	require.NoError(t, InitSchema(conn))
}

func TestMigrations_MatchSchemaSQL(t *testing.T) {
	fresh := openMemory(t)
	require.NoError(t, InitSchema(fresh))

	migrated := openMemory(t)
	require.NoError(t, RunMigrations(migrated))

	assert.Equal(t, columns(t, fresh), columns(t, migrated))
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "milestone.db")
	conn, err := Open(path)
	require.NoError(t, err)
	defer conn.Close()

	v, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion(), v)
}

func TestSeedFixtures(t *testing.T) {
	conn := openMemory(t)
	require.NoError(t, InitSchema(conn))

	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, SeedFixtures(conn, "local", now))

	var habits, completions int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM habits").Scan(&habits))
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM habit_completions").Scan(&completions))
	assert.Equal(t, 3, habits)
	assert.Equal(t, 21+9+4, completions)
}
