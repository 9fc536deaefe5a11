package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "./worksheet.csv", config.Worksheet.Path)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestLoadFromFiles(t *testing.T) {
	t.Run("Later files override earlier ones", func(t *testing.T) {
		dir := t.TempDir()

		base := filepath.Join(dir, "base.toml")
		require.NoError(t, os.WriteFile(base, []byte(`
[worksheet]
path = "base.csv"

[output]
dir = "base-out"
`), 0644))

		override := filepath.Join(dir, "override.toml")
		require.NoError(t, os.WriteFile(override, []byte(`
[output]
dir = "override-out"
`), 0644))

		config, err := LoadFromFiles(base, override)
		require.NoError(t, err)
		assert.Equal(t, "base.csv", config.Worksheet.Path)
		assert.Equal(t, "override-out", config.Output.Dir)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := LoadFromFiles(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absent.toml")
	})

	t.Run("Malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte("worksheet = {"), 0644))

		_, err := LoadFromFiles(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("Environment variables override files", func(t *testing.T) {
		t.Setenv("ORDINO_OUTPUT_DIR", "env-out")
		t.Setenv("ORDINO_LOG_LEVEL", "debug")

		config, err := LoadFromFiles()
		require.NoError(t, err)
		assert.Equal(t, "env-out", config.Output.Dir)
		assert.Equal(t, "debug", config.Logging.Level)
	})
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, "flag.csv", "", "flag.html")

	assert.Equal(t, "flag.csv", config.Worksheet.Path)
	assert.Equal(t, "./out", config.Output.Dir, "empty flag leaves config untouched")
	assert.Equal(t, "flag.html", config.Report.Path)
}

func TestConfigValidate(t *testing.T) {
	config := NewDefaultConfig()
	config.Dictionaries.ResourceDir = ""

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
