package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, uint64(0), c.Seed)
	require.Equal(t, 0, c.Workers)
	require.Equal(t, 480, c.DiagramSize)
	require.False(t, c.InMemory)

	lvl, err := c.Level()
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, lvl)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRUST_PERFT_WORKERS", "3")
	t.Setenv("CRUST_SEED", "12345")
	t.Setenv("CRUST_STORAGE_MEMORY", "true")
	t.Setenv("CRUST_LOG_LEVEL", "debug")

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 3, c.Workers)
	require.Equal(t, uint64(12345), c.Seed)
	require.True(t, c.InMemory)
	require.Equal(t, "debug", c.LogLevel)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crust.yaml")
	data := []byte("seed: 99\nperft:\n  workers: 2\ndiagram:\n  size: 256\n  flip: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(99), c.Seed)
	require.Equal(t, 2, c.Workers)
	require.Equal(t, 256, c.DiagramSize)
	require.True(t, c.DiagramFlip)

	// The environment wins over the file.
	t.Setenv("CRUST_PERFT_WORKERS", "6")
	c, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, 6, c.Workers)
}

func TestZobristSeed(t *testing.T) {
	t.Setenv("CRUST_SEED", "7")
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, uint64(7), c.ZobristSeed())

	t.Setenv("CRUST_ZOBRIST_RANDOM", "true")
	c, err = Load("")
	require.NoError(t, err)
	require.True(t, c.RandomKeys)
	require.NotEqual(t, c.ZobristSeed(), c.ZobristSeed())
}

func TestInvalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("CRUST_LOG_LEVEL", "loud")
	_, err = Load("")
	require.Error(t, err)
}

func TestInvalidSize(t *testing.T) {
	t.Setenv("CRUST_DIAGRAM_SIZE", "10")
	_, err := Load("")
	require.Error(t, err)
}
