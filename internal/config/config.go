// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Registry string `json:"registry,omitempty"` // Path to the module registry YAML
	Schema   string `json:"schema,omitempty"`   // Path to the registry JSON schema
	Signals  string `json:"signals,omitempty"`  // Directory of element signal records
	Out      string `json:"out,omitempty"`      // Output directory for composed artifacts

	// Behavior
	Strict      bool   `json:"strict,omitempty"`       // Treat a REJECT verdict as a hard failure
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed stage information
	Concurrency int    `json:"concurrency,omitempty"`  // Parallel workers for batch generation
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Registry != "" {
		if _, err := os.Stat(c.Registry); os.IsNotExist(err) {
			return fmt.Errorf("config error: registry file not found: %s", c.Registry)
		}
	}
	if c.Signals != "" {
		if _, err := os.Stat(c.Signals); os.IsNotExist(err) {
			return fmt.Errorf("config error: signals directory not found: %s", c.Signals)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Registry == "" {
		result.Registry = defaults.Registry
	}
	if result.Schema == "" {
		result.Schema = defaults.Schema
	}
	if result.Signals == "" {
		result.Signals = defaults.Signals
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Concurrency == 0 {
		if defaults.Concurrency > 0 {
			result.Concurrency = defaults.Concurrency
		} else {
			result.Concurrency = 4
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
