package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, profile Profile) *DB {
	t.Helper()
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "test.db"),
		Profile: profile,
		Name:    "test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesDatabase(t *testing.T) {
	db := newTestDB(t, ProfileStandard)
	assert.Equal(t, "test", db.Name())
	assert.NotEmpty(t, db.Path())
	require.NoError(t, db.Conn().Ping())
}

func TestNew_DefaultsToStandardProfile(t *testing.T) {
	db, err := New(Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
		Name: "test",
	})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, ProfileStandard, db.profile)
}

func TestDB_ExecAndQuery(t *testing.T) {
	db := newTestDB(t, ProfileStandard)

	_, err := db.Exec("CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO kv (k, v) VALUES (?, ?)", "a", "1")
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRow("SELECT v FROM kv WHERE k = ?", "a").Scan(&v))
	assert.Equal(t, "1", v)
}

func TestDB_HealthChecks(t *testing.T) {
	db := newTestDB(t, ProfileStandard)

	ctx := context.Background()
	assert.NoError(t, db.HealthCheck(ctx))
	assert.NoError(t, db.QuickCheck(ctx))
}

func TestDB_WALCheckpoint(t *testing.T) {
	db := newTestDB(t, ProfileStandard)

	_, err := db.Exec("CREATE TABLE t (n INTEGER)")
	require.NoError(t, err)

	assert.NoError(t, db.WALCheckpoint("PASSIVE"))
	assert.NoError(t, db.WALCheckpoint("TRUNCATE"))
	assert.NoError(t, db.WALCheckpoint(""))
}

func TestDB_GetStats(t *testing.T) {
	db := newTestDB(t, ProfileCache)

	_, err := db.Exec("CREATE TABLE t (n INTEGER)")
	require.NoError(t, err)

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Greater(t, stats.PageCount, int64(0))
	assert.Greater(t, stats.PageSize, int64(0))
}
