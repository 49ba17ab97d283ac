// Package config provides configuration loading and validation for crypto-price-mcp-server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from YAML file and environment variables.
func Load(path string) (*Config, error) {
	// Validate and sanitize path
	cleanPath := filepath.Clean(path)
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	// Read config file
	data, err := os.ReadFile(absPath) // #nosec G304 -- Path sanitized with filepath.Clean and filepath.Abs
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in YAML
	expanded := os.ExpandEnv(string(data))

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults
	ApplyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// DefaultExchanges returns an enabled entry for every built-in adapter,
// in the canonical outcome order.
func DefaultExchanges() []ExchangeConfig {
	out := make([]ExchangeConfig, 0, len(KnownExchanges))
	for _, name := range KnownExchanges {
		out = append(out, ExchangeConfig{Name: name, Enabled: true})
	}
	return out
}

// ApplyDefaults sets default values for optional fields.
func ApplyDefaults(cfg *Config) {
	// Default mode
	if cfg.Mode == "" {
		cfg.Mode = ModeMCP
	}

	// Server defaults
	if cfg.Server.DefaultChainID == 0 {
		cfg.Server.DefaultChainID = 1 // Ethereum mainnet
	}
	if cfg.Server.QuoteTimeout.ToDuration() == 0 {
		cfg.Server.QuoteTimeout = Duration(10 * time.Second)
	}
	if cfg.Server.HTTP.Addr == "" {
		cfg.Server.HTTP.Addr = ":8080"
	}

	// All built-in exchanges when none are listed
	if len(cfg.Exchanges) == 0 {
		cfg.Exchanges = DefaultExchanges()
	}

	// Metrics defaults
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9091"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		// stdout carries the stdio tool framing, logs must not mix into it
		if cfg.IsMCPMode() {
			cfg.Logging.Output = "stderr"
		} else {
			cfg.Logging.Output = "stdout"
		}
	}
}

// GetString retrieves a string value from the exchange configuration.
func (ec *ExchangeConfig) GetString(key, defaultValue string) string {
	if val, ok := ec.Config[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultValue
}

// GetInt retrieves an integer from exchange config.
func (ec *ExchangeConfig) GetInt(key string, defaultValue int) int {
	if val, ok := ec.Config[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// YAML numbers may arrive as float64
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean from exchange config.
func (ec *ExchangeConfig) GetBool(key string, defaultValue bool) bool {
	if val, ok := ec.Config[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// NormalizeMode converts mode string to lowercase.
func (c *Config) NormalizeMode() string {
	return strings.ToLower(c.Mode)
}

// IsMCPMode returns true if the stdio tool server should run.
func (c *Config) IsMCPMode() bool {
	mode := c.NormalizeMode()
	return mode == ModeBoth || mode == ModeMCP
}

// IsHTTPMode returns true if the HTTP API should run.
func (c *Config) IsHTTPMode() bool {
	mode := c.NormalizeMode()
	return mode == ModeBoth || mode == ModeHTTP
}

// EmailConfigured reports whether the SMTP notifier can be built.
func (c *Config) EmailConfigured() bool {
	return c.Email.Host != ""
}
