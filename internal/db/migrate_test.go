package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_SortedAndEmbedded(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.Equal(t, "0001_create_events.sql", names[0])
	assert.IsNonDecreasing(t, names)

	b, err := migrationFiles.ReadFile("migrations/" + names[0])
	require.NoError(t, err)

	sql := string(b)
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS events")
	// derived flags are computed on read, never persisted
	assert.False(t, strings.Contains(sql, "free"))
	assert.False(t, strings.Contains(sql, "offline"))
}
