package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersions(t *testing.T) {
	t.Parallel()

	versions, err := migrationVersions()
	require.NoError(t, err)

	assert.Equal(t, []string{"001_events.sql", "002_host_tables.sql"}, versions)

	for _, v := range versions {
		data, err := migrationsFS.ReadFile("migrations/" + v)
		require.NoError(t, err)
		assert.NotEmpty(t, data, v)
	}
}
