package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests change XDG variables with t.Setenv and so cannot run in parallel.

func TestLoadConfig_CreatesDefault(t *testing.T) {
	configHome := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataHome, "cardpool", "cards.db"), cfg.Database)
	assert.Equal(t, filepath.Join(dataHome, "cardpool", "sets"), cfg.SetsDir)
	assert.Equal(t, DefaultPoolSize, cfg.PoolSize)
	assert.FileExists(t, filepath.Join(configHome, "cardpool", "config.toml"))
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	path := filepath.Join(configHome, "cardpool", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("pool_size = 15\ndefault_sets = [\"M10\", \"ZEN\"]\n"), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.PoolSize)
	assert.Equal(t, []string{"M10", "ZEN"}, cfg.DefaultSets)
	assert.Equal(t, Default().Database, cfg.Database)
}

func TestLoadConfig_Invalid(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	path := filepath.Join(configHome, "cardpool", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	require.NoError(t, os.WriteFile(path, []byte("pool_size = "), 0644))
	_, err := LoadConfig()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("pool_size = -3\n"), 0644))
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestSetDefaultSets(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	require.NoError(t, SetDefaultSets([]string{"DOM"}))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"DOM"}, cfg.DefaultSets)
}
