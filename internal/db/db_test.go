package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	database, err := InitMemoryDB()
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, RunMigrations(database.DB))
	require.NoError(t, RunMigrations(database.DB))

	var tables []string
	require.NoError(t, database.Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('tournaments', 'players') ORDER BY name"))
	assert.Equal(t, []string{"players", "tournaments"}, tables)
}

func TestInitDBEnablesForeignKeys(t *testing.T) {
	database, err := InitDB(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer database.Close()

	var enabled int
	require.NoError(t, database.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)

	var mode string
	require.NoError(t, database.Get(&mode, "PRAGMA journal_mode"))
	assert.Equal(t, "wal", mode)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "file:data/t.db?"+dsnOptions, DSN("data/t.db"))
}
