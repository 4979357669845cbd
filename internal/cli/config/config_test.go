package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Registry.Command)
	assert.Equal(t, "General", cfg.Registry.DefaultName)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "registry:\n  command: pkgserver\n  args: [\"--stdio\"]\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkglens.yml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pkgserver", cfg.Registry.Command)
	assert.Equal(t, []string{"--stdio"}, cfg.Registry.Args)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "General", cfg.Registry.DefaultName)
}
