package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/health?sslmode=disable", pgxURL("postgres://u:p@db:5432/health?sslmode=disable"))
}

func TestMigrations_ArePairedAndDeclareRelationIndexes(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)
	assert.NotZero(t, ups)

	raw, err := fs.ReadFile(migrationFiles, "migrations/000002_relations.up.sql")
	require.NoError(t, err)
	sql := string(raw)
	assert.Contains(t, sql, "CREATE UNIQUE INDEX IF NOT EXISTS uq_relations_active_pair")
	assert.Contains(t, sql, "WHERE status = 'active'")
	assert.Contains(t, sql, "WHERE status = 'pending'")
}
