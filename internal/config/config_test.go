package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Gulshan Branch")
	cfg.Branch.Code = "014"
	cfg.Data.Dir = "/var/lib/sarmaya"
	cfg.Data.StrictLoad = true

	path := filepath.Join(t.TempDir(), "sarmaya.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Branch.Name, got.Branch.Name)
	assert.Equal(t, cfg.Branch.Code, got.Branch.Code)
	assert.Equal(t, cfg.Data.Dir, got.Data.Dir)
	assert.Equal(t, cfg.Data.StrictLoad, got.Data.StrictLoad)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.False(t, cfg.Data.StrictLoad)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SARMAYA_DATA_DIR", "/tmp/override")

	cfg := Default("Test Branch")
	path := filepath.Join(t.TempDir(), "sarmaya.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override", got.Data.Dir)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sarmaya.yaml")
	require.NoError(t, os.WriteFile(path, []byte("branch: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
