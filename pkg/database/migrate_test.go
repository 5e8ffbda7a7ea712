package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_schema.sql", names[0])

	schema, err := migrationsFS.ReadFile(names[0])
	require.NoError(t, err)
	for _, table := range []string{"webinars", "registrations"} {
		assert.True(t, strings.Contains(string(schema), "CREATE TABLE IF NOT EXISTS "+table), table)
	}
	assert.Contains(t, string(schema), "UNIQUE (user_id, webinar_id)")
}
