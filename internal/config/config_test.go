package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create temporary directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "destrier.yml")

	// Write valid config
	validConfig := `version: "1.0"
output:
  format: "json"
  color: "never"
history:
  enabled: true
  redis_url: "redis://cache.local:6379/2"
  profile: "league-night"
  limit: 250
batch:
  jobs: 3
`
	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	// Load and validate
	config, err := Load(configPath)
	require.NoError(t, err)
	assert.NotNil(t, config)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, "never", config.Output.Color)
	assert.True(t, config.History.Enabled)
	assert.Equal(t, "redis://cache.local:6379/2", config.History.RedisURL)
	assert.Equal(t, "league-night", config.History.Profile)
	assert.Equal(t, 250, config.History.Limit)
	assert.Equal(t, 3, config.Batch.Jobs)
}

func TestLoad_MinimalConfigGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "destrier.yml")

	err := os.WriteFile(configPath, []byte("version: \"1.0\"\n"), 0644)
	require.NoError(t, err)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "path", config.Output.Format)
	assert.Equal(t, "auto", config.Output.Color)
	assert.False(t, config.History.Enabled)
	assert.Equal(t, DefaultRedisURL, config.History.RedisURL)
	assert.Equal(t, DefaultProfile, config.History.Profile)
	assert.Equal(t, runtime.NumCPU(), config.Batch.Jobs)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/destrier.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "destrier.yml")

	// Write invalid YAML
	invalidYAML := `version: "1.0"
output:
  - this is invalid
    yaml syntax
`
	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	config, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	config, err := LoadOrDefault(filepath.Join(t.TempDir(), "destrier.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadOrDefault_BrokenFileStillFails(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "destrier.yml")

	err := os.WriteFile(configPath, []byte("version: \"9.9\"\n"), 0644)
	require.NoError(t, err)

	config, err := LoadOrDefault(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "unsupported version")
}

func TestValidate_UnsupportedVersion(t *testing.T) {
	config := &DestrierConfig{Version: "2.0"}

	err := config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version: 2.0")
}

func TestValidate_InvalidOutputFormat(t *testing.T) {
	config := &DestrierConfig{
		Version: "1.0",
		Output:  &OutputConfig{Format: "xml"},
	}

	err := config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format: xml")
}

func TestValidate_InvalidColorMode(t *testing.T) {
	config := &DestrierConfig{
		Version: "1.0",
		Output:  &OutputConfig{Color: "sometimes"},
	}

	err := config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output color: sometimes")
}

func TestValidate_InvalidProfile(t *testing.T) {
	testCases := []struct {
		name    string
		profile string
	}{
		{"uppercase", "League"},
		{"leading hyphen", "-league"},
		{"trailing hyphen", "league-"},
		{"underscore", "league_night"},
		{"space", "league night"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := &DestrierConfig{
				Version: "1.0",
				History: &HistoryConfig{Profile: tc.profile},
			}

			err := config.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid history profile")
		})
	}
}

func TestValidate_NegativeHistoryLimit(t *testing.T) {
	config := &DestrierConfig{
		Version: "1.0",
		History: &HistoryConfig{Limit: -1},
	}

	err := config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "history limit must be >= 0")
}

func TestValidate_NegativeBatchJobs(t *testing.T) {
	config := &DestrierConfig{
		Version: "1.0",
		Batch:   &BatchConfig{Jobs: -2},
	}

	err := config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch jobs must be >= 1")
}

func TestRedisURL_Precedence(t *testing.T) {
	config := Default()
	config.History.RedisURL = "redis://configured:6379/0"

	t.Run("config value wins without env", func(t *testing.T) {
		assert.Equal(t, "redis://configured:6379/0", config.RedisURL())
	})

	t.Run("environment overrides config", func(t *testing.T) {
		t.Setenv(EnvRedisURL, "redis://from-env:6379/1")
		assert.Equal(t, "redis://from-env:6379/1", config.RedisURL())
	})
}
