package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, cfg.CacheDir)
	require.False(t, cfg.Debug)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.CacheDir = "/srv/devshell-cache"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, loaded.Debug)
	require.Equal(t, "/srv/devshell-cache", loaded.CacheDir)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_dir: [broken"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoggerRespectsDebug(t *testing.T) {
	quiet := DefaultConfig()
	require.NotNil(t, quiet.Logger())

	loud := DefaultConfig()
	loud.Debug = true
	require.NotNil(t, loud.Logger())
}
