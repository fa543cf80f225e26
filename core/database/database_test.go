package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSNDefaultsSSLMode(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "bot", Password: "p@ss", Name: "leads"}
	assert.Equal(t, "user=bot password=p@ss host=db port=5432 dbname=leads sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://bot:p%40ss@db:5432/leads?sslmode=disable", cfg.URL())
}

func TestListMigrationFilesAndApplied(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000002_b.up.sql", "000001_a.up.sql", "000001_a.down.sql", "000003_c.up.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	files := listMigrationFiles(dir)
	assert.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql", "000003_c.up.sql"}, files)
	assert.Equal(t, []string{"000002_b.up.sql", "000003_c.up.sql"}, appliedBetween(files, 1, 3))
	assert.Empty(t, appliedBetween(files, 3, 3))
}

func TestResolveMigrationsDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "m")
	got, err := resolveMigrationsDir(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	got, err = resolveMigrationsDir("")
	require.NoError(t, err)
	assert.Equal(t, "migrations", filepath.Base(got))
}
