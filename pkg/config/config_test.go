package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsPrefixLengthBelowMaxDistance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Index.MaxDistance = 5
	cfg.Index.PrefixLength = 2
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsServerMaxPrefixBelowMinPrefix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.MinPrefix = 10
	cfg.Server.MaxPrefix = 3
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveMaxLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.MaxLimit = 0
	require.Error(t, cfg.Validate())
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Index.MaxDistance = 3
	cfg.Dict.Path = "custom.txt"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Index.MaxDistance, loaded.Index.MaxDistance)
	require.Equal(t, cfg.Dict.Path, loaded.Dict.Path)
}

func TestInitConfigCreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Index.MaxDistance, cfg.Index.MaxDistance)
	require.True(t, FileExistsHelper(path))
}

// FileExistsHelper avoids importing internal/utils directly into the test
// for a single check, keeping the test package-boundary honest.
func FileExistsHelper(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestLoadConfigRecoversPartiallyFromBrokenTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	// Syntactically valid TOML, but "lowercase" has the wrong type for the
	// Config struct field — DecodeFile fails for the whole struct, while a
	// map[string]any decode still succeeds, so max_distance recovers and
	// lowercase falls back to its default.
	broken := "[index]\nmax_distance = 3\nlowercase = \"yes\"\n"
	require.NoError(t, os.WriteFile(path, []byte(broken), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Index.MaxDistance)
	require.True(t, cfg.Index.Lowercase)
}
