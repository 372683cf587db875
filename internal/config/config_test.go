package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadAppliesDefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oso.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "debug"`+"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, InsertionSort, cfg.Sort.Algorithm)
	assert.Equal(t, 64, cfg.MaxTrieDepth)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidateRejectsUnsupportedAlgorithm(t *testing.T) {
	cfg := Default()
	cfg.Sort.Algorithm = "merge"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveTrieDepth(t *testing.T) {
	cfg := Default()
	cfg.MaxTrieDepth = 0
	assert.Error(t, cfg.Validate())
}
