package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresets(t *testing.T) {
	presets := BuiltinPresets()
	require.Len(t, presets, 3)

	balanced := presets["balanced"]
	require.NotNil(t, balanced.Beta)
	assert.Equal(t, 0.6, *balanced.Beta)
	require.NotNil(t, balanced.Recent)
	assert.Equal(t, 120, *balanced.Recent)
	require.NotNil(t, balanced.Decay)
	assert.Equal(t, 0.98, *balanced.Decay)
	assert.Nil(t, balanced.Temperature, "builtins leave temperature alone")

	dedup := presets["dedup"]
	assert.Equal(t, 0.9, *dedup.Beta)
	assert.Equal(t, 90, *dedup.Recent)

	hot := presets["hot"]
	assert.Equal(t, 0.3, *hot.Beta)
	assert.Equal(t, 300, *hot.Recent)
	assert.Equal(t, 1.0, *hot.Decay)
}

func TestLoadPresets_EmptyPathReturnsBuiltins(t *testing.T) {
	presets, err := LoadPresets("")
	require.NoError(t, err)
	assert.Len(t, presets, 3)
}

func TestLoadPresets_FileMergesOverBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
aggressive:
  beta: 1.5
  temperature: 0.5
balanced:
  beta: 0.7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	require.Len(t, presets, 4)

	aggressive := presets["aggressive"]
	require.NotNil(t, aggressive.Beta)
	assert.Equal(t, 1.5, *aggressive.Beta)
	require.NotNil(t, aggressive.Temperature)
	assert.Equal(t, 0.5, *aggressive.Temperature)
	assert.Nil(t, aggressive.Recent)

	// File presets replace builtins wholesale, not field by field.
	balanced := presets["balanced"]
	require.NotNil(t, balanced.Beta)
	assert.Equal(t, 0.7, *balanced.Beta)
	assert.Nil(t, balanced.Recent)
	assert.Nil(t, balanced.Decay)
}

func TestLoadPresets_MissingFile(t *testing.T) {
	_, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPresets_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("balanced: [not a map"), 0644))

	_, err := LoadPresets(path)
	assert.Error(t, err)
}

func TestConfig_Paths(t *testing.T) {
	cfg := &Config{DataDir: "/var/lib/ssq"}
	assert.Equal(t, filepath.Join("/var/lib/ssq", "draws.db"), cfg.ArchivePath())
	assert.Equal(t, filepath.Join("/var/lib/ssq", "draws.msgpack"), cfg.CachePath())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SSQ_DATA_DIR", t.TempDir())
	t.Setenv("SSQ_SEED", "7")
	t.Setenv("SSQ_NUM_SETS", "10")
	t.Setenv("SSQ_BETA", "0.9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 10, cfg.Count)
	assert.Equal(t, 0.9, cfg.Beta)
	assert.Equal(t, 1.0, cfg.Temperature, "unset vars keep defaults")
}
