// Package config holds the mtdump settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the mtdump configuration.
type Config struct {
	// Schemas lists extra schema files (YAML or JSON) registered at start-up.
	Schemas []string `yaml:"schemas,omitempty"`

	// Concurrency bounds the batch command worker group.
	Concurrency int `yaml:"concurrency"`

	// Output is "text" or "json".
	Output string `yaml:"output"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger of the CLI.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json or console
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 4,
		Output:      "text",
		Logging: LoggingConfig{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output %q", c.Output)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log encoding %q", c.Logging.Encoding)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MTDUMP_SCHEMAS"); v != "" {
		c.Schemas = nil
		for _, p := range strings.Split(v, string(os.PathListSeparator)) {
			if p = strings.TrimSpace(p); p != "" {
				c.Schemas = append(c.Schemas, p)
			}
		}
	}
	if v := os.Getenv("MTDUMP_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	if v := os.Getenv("MTDUMP_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("MTDUMP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MTDUMP_LOG_ENCODING"); v != "" {
		c.Logging.Encoding = v
	}
}
