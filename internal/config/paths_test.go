package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/countdown/internal/constants"
)

func TestGlobalConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, constants.AppHome), dir)
}

func TestGlobalConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".countdown", "config.yaml"), path)
}

func TestProjectConfigPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".countdown", ProjectConfigDir())
	assert.Equal(t, filepath.Join(".countdown", "config.yaml"), ProjectConfigPath())
}
