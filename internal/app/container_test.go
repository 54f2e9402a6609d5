package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/infra/jsonstore"
	"github.com/runoshun/tasktimer/internal/infra/sqlitestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDataDir(t *testing.T) {
	t.Run("TASKTIMER_HOME wins", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvHome, dir)
		t.Setenv("XDG_DATA_HOME", "/elsewhere")

		got, err := ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv(EnvHome, "")
		t.Setenv("XDG_DATA_HOME", "/xdg/data")

		got, err := ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/xdg/data", "tasktimer"), got)
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(EnvHome, "")
		t.Setenv("XDG_DATA_HOME", "")
		t.Setenv("HOME", home)

		got, err := ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "tasktimer"), got)
	})
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()

	b, err := OpenBackend(domain.BackendJSON, filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)
	assert.IsType(t, &jsonstore.Store{}, b)

	b, err = OpenBackend(domain.BackendSQLite, filepath.Join(dir, "tasks.db"))
	require.NoError(t, err)
	assert.IsType(t, &sqlitestore.Store{}, b)
	require.NoError(t, b.(*sqlitestore.Store).Close())

	_, err = OpenBackend("redis", filepath.Join(dir, "x"))
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestNew_UsesConfiguredBackend(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	require.NoError(t, writeFile(filepath.Join(dataDir, "config.toml"), "[store]\nbackend = \"json\"\n"))

	c, err := New(dataDir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.BackendJSON, c.Config.Backend)
	assert.Equal(t, filepath.Join(dataDir, "tasks.json"), c.Config.StorePath)
	assert.IsType(t, &jsonstore.Store{}, c.Backend)
}

func TestNew_DefaultsToSQLite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()

	c, err := New(dataDir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.BackendSQLite, c.Config.Backend)
	assert.Equal(t, filepath.Join(dataDir, "tasks.db"), c.Config.StorePath)
}

func TestMigrateStoreUseCase_RejectsCurrentStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = c.MigrateStoreUseCase(domain.BackendSQLite, "")
	assert.Error(t, err)

	uc, err := c.MigrateStoreUseCase(domain.BackendJSON, "")
	require.NoError(t, err)
	assert.NotNil(t, uc)
}

func TestMigrateStoreUseCase_RejectsCurrentStoreByRelativePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	c, err := New(dataDir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	t.Chdir(dataDir)

	for _, path := range []string{"tasks.db", "./tasks.db", "sub/../tasks.db", filepath.Join(dataDir, ".", "tasks.db")} {
		_, err := c.MigrateStoreUseCase(domain.BackendSQLite, path)
		assert.Error(t, err, "path %s", path)
	}
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	assert.True(t, samePath("tasks.db", filepath.Join(dir, "tasks.db")))
	assert.True(t, samePath("./a/../tasks.db", "tasks.db"))
	assert.False(t, samePath("tasks.json", "tasks.db"))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
