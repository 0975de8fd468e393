package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/darch/internal/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "darch")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.HexStyle)
	assert.Nil(t, cfg.Defaults.Digest)
	assert.Nil(t, cfg.Filter.MinSize)
	assert.Empty(t, cfg.Filter.Exclude)
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
hex_style = "lower"
digest = true
summary = false

[filter]
exclude = ["*.o", "build/"]
include = ["keep.o"]
min_size = "1K"
max_size = "1G"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.HexStyle)
	assert.Equal(t, "lower", *cfg.Defaults.HexStyle)

	require.NotNil(t, cfg.Defaults.Digest)
	assert.True(t, *cfg.Defaults.Digest)

	require.NotNil(t, cfg.Defaults.Summary)
	assert.False(t, *cfg.Defaults.Summary)

	assert.Equal(t, []string{"*.o", "build/"}, cfg.Filter.Exclude)
	assert.Equal(t, []string{"keep.o"}, cfg.Filter.Include)

	require.NotNil(t, cfg.Filter.MinSize)
	assert.Equal(t, "1K", *cfg.Filter.MinSize)
	require.NotNil(t, cfg.Filter.MaxSize)
	assert.Equal(t, "1G", *cfg.Filter.MaxSize)
}

func TestLoad_PartialConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
digest = true
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Digest)
	assert.True(t, *cfg.Defaults.Digest)

	// Unset fields should remain nil.
	assert.Nil(t, cfg.Defaults.HexStyle)
	assert.Nil(t, cfg.Defaults.Summary)
	assert.Nil(t, cfg.Filter.MaxSize)
}

func TestLoad_InvalidTOML(t *testing.T) {
	writeConfig(t, "invalid [[[")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.toml")
}

func TestLoad_UnknownKeys(t *testing.T) {
	writeConfig(t, `
[defaults]
digest = true
colour = "always"

[filters]
exclude = ["*.o"]
`)

	cfg, err := config.Load()
	require.ErrorIs(t, err, config.ErrUnknownKeys)
	assert.Contains(t, err.Error(), "defaults.colour")
	assert.Contains(t, err.Error(), "filters")

	// Known keys are still decoded.
	require.NotNil(t, cfg.Defaults.Digest)
	assert.True(t, *cfg.Defaults.Digest)
	assert.Empty(t, cfg.Filter.Exclude)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nhex_style = \"prefix-upper\"\n"), 0o644))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Defaults.HexStyle)
	assert.Equal(t, "prefix-upper", *cfg.Defaults.HexStyle)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/darch/config.toml", config.Path())
}
