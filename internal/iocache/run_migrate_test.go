package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(&bytes.Buffer{}, schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateRuns_UnsupportedBackend(t *testing.T) {
	err := MigrateRuns(&bytes.Buffer{}, schema.DatabaseBackend("redis"), "", -1)
	assert.Error(t, err)
}

func TestMigrateRuns_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var out bytes.Buffer

	require.NoError(t, MigrateRuns(&out, schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "to version 1")

	out.Reset()
	require.NoError(t, MigrateRuns(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "No migration needed")

	require.NoError(t, MigrateRuns(&out, schema.SQLiteBackend, dbPath, 1))
	require.NoError(t, MigrateRuns(&out, schema.SQLiteBackend, dbPath, 0))
	require.NoError(t, MigrateRuns(&out, schema.SQLiteBackend, dbPath, 1))
}

func TestMigrateRuns_SQLiteThenStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrated.db")
	require.NoError(t, MigrateRuns(&bytes.Buffer{}, schema.SQLiteBackend, dbPath, -1))

	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("s", "simulate", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordSnapshot(baselineRecord(runID, 1)))
}

func TestMigrationDirsEmbedded(t *testing.T) {
	for backend, dir := range migrationDirs {
		entries, err := migrationsFS.ReadDir(dir)
		require.NoError(t, err, "backend %s", backend)
		assert.Len(t, entries, 2, "backend %s should have one up and one down migration", backend)
	}
}
