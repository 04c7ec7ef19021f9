package runstore

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/sweeplens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistorySQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	// Running again is a no-op at the latest version
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	// Roll all migrations back down
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateHistoryToVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
}

func TestMigrateHistoryNoneBackend(t *testing.T) {
	assert.Error(t, MigrateHistory(schema.NoneBackend, "", -1))
}
