// Package config loads and validates destrier.yml, the per-directory
// configuration for output shape and the solve journal.
package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	// EnvRedisURL overrides the configured journal Redis URL when set.
	EnvRedisURL = "DESTRIER_REDIS_URL"

	// DefaultRedisURL is used when neither the environment nor the
	// config names a Redis instance.
	DefaultRedisURL = "redis://localhost:6379/0"

	// DefaultProfile namespaces journal keys when no profile is set.
	DefaultProfile = "default"

	// DefaultHistoryLimit caps how many journal entries are retained.
	DefaultHistoryLimit = 1000
)

// profilePattern matches journal profile names: lowercase alphanumerics
// with interior hyphens, so profiles embed cleanly in Redis key names.
var profilePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// DestrierConfig represents the top-level destrier.yml configuration
type DestrierConfig struct {
	Version string         `yaml:"version"`
	Output  *OutputConfig  `yaml:"output,omitempty"`
	History *HistoryConfig `yaml:"history,omitempty"`
	Batch   *BatchConfig   `yaml:"batch,omitempty"`
}

// OutputConfig controls how solved paths are rendered
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // "path" (space-separated squares) or "json"
	Color  string `yaml:"color,omitempty"`  // "auto", "always", or "never"
}

// HistoryConfig controls the Redis-backed solve journal
type HistoryConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty"`   // Record every solve without needing --save
	RedisURL string `yaml:"redis_url,omitempty"` // Connection URL, e.g. redis://localhost:6379/0
	Profile  string `yaml:"profile,omitempty"`   // Key namespace, so journals can coexist
	Limit    int    `yaml:"limit,omitempty"`     // Entries retained per profile (0 = unlimited)
}

// BatchConfig controls batch solving
type BatchConfig struct {
	Jobs int `yaml:"jobs,omitempty"` // Concurrent solves (default: number of CPUs)
}

// Default returns the configuration used when no destrier.yml exists:
// plain path output, journaling off, one batch worker per CPU.
func Default() *DestrierConfig {
	return &DestrierConfig{
		Version: "1.0",
		Output: &OutputConfig{
			Format: "path",
			Color:  "auto",
		},
		History: &HistoryConfig{
			Enabled:  false,
			RedisURL: DefaultRedisURL,
			Profile:  DefaultProfile,
			Limit:    DefaultHistoryLimit,
		},
		Batch: &BatchConfig{
			Jobs: runtime.NumCPU(),
		},
	}
}

// Validate performs strict validation on the configuration and fills in
// defaults for omitted sections and fields.
func (c *DestrierConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	if c.Output.Format == "" {
		c.Output.Format = "path"
	}
	if c.Output.Format != "path" && c.Output.Format != "json" {
		return fmt.Errorf("invalid output format: %s (must be 'path' or 'json')", c.Output.Format)
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Color != "auto" && c.Output.Color != "always" && c.Output.Color != "never" {
		return fmt.Errorf("invalid output color: %s (must be 'auto', 'always', or 'never')", c.Output.Color)
	}

	if c.History == nil {
		c.History = &HistoryConfig{}
	}
	if c.History.RedisURL == "" {
		c.History.RedisURL = DefaultRedisURL
	}
	if c.History.Profile == "" {
		c.History.Profile = DefaultProfile
	}
	if !profilePattern.MatchString(c.History.Profile) {
		return fmt.Errorf("invalid history profile: %s (must be lowercase alphanumeric, hyphens allowed inside)", c.History.Profile)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history limit must be >= 0 (0 = unlimited), got %d", c.History.Limit)
	}

	if c.Batch == nil {
		c.Batch = &BatchConfig{}
	}
	if c.Batch.Jobs == 0 {
		c.Batch.Jobs = runtime.NumCPU()
	}
	if c.Batch.Jobs < 1 {
		return fmt.Errorf("batch jobs must be >= 1, got %d", c.Batch.Jobs)
	}

	return nil
}

// RedisURL returns the journal connection URL. The DESTRIER_REDIS_URL
// environment variable takes precedence over the configured value.
func (c *DestrierConfig) RedisURL() string {
	if url := os.Getenv(EnvRedisURL); url != "" {
		return url
	}
	return c.History.RedisURL
}

// Load reads and validates destrier.yml from the specified path
func Load(path string) (*DestrierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config DestrierConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault reads destrier.yml when it exists and falls back to
// Default when it does not. Any other read or validation failure is
// still an error, so a broken config never silently degrades.
func LoadOrDefault(path string) (*DestrierConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
