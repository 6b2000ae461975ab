// Package config provides configuration loading and validation for the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the server configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// environment variables or CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Upstream model access
	APIKey string `json:"api_key,omitempty"` // Gemini API key

	// Quota
	FreeMonthlyLimit int `json:"free_monthly_limit,omitempty"` // Free-plan interviews per calendar month

	// Admin access: bcrypt hash of the bearer secret accepted on /admin routes.
	// Admin routes are disabled when empty.
	AdminTokenHash string `json:"admin_token_hash,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
	LogJSON bool `json:"log_json,omitempty"`
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv returns a Config populated from environment variables. Values set in
// a config file win when merged via MergeWithDefaults.
func FromEnv() Config {
	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.FreeMonthlyLimit < 0 {
		return fmt.Errorf("config error: 'free_monthly_limit' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.AdminTokenHash == "" {
		result.AdminTokenHash = defaults.AdminTokenHash
	}
	if result.FreeMonthlyLimit == 0 {
		if defaults.FreeMonthlyLimit > 0 {
			result.FreeMonthlyLimit = defaults.FreeMonthlyLimit
		} else {
			result.FreeMonthlyLimit = 3 // Free plan: 3 mock interviews per month
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
