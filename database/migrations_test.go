package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EveryUpHasDown(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file in migrations dir: %s", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestMigrations_SeedDefaultQuiz(t *testing.T) {
	data, err := fs.ReadFile(Migrations, MigrationsDir+"/000001_init_schema.up.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "VALUES (1, 'Vocabulary Quiz', 'vocabulary'")
	assert.Contains(t, sql, "UNIQUE (user_id, category)")
}
