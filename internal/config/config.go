// Package config loads optional user defaults from
// $XDG_CONFIG_HOME/gh-reinvite/config.yml. Command-line flags always
// override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/battlewithbytes/gh-reinvite/internal/reinvite"
)

// Config holds user-tunable defaults for the workflow.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	History  HistoryConfig  `yaml:"history"`
}

type DefaultsConfig struct {
	DelaySeconds int    `yaml:"delay_seconds"`
	Permission   string `yaml:"permission"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			DelaySeconds: 5,
			Permission:   string(reinvite.DefaultPermission),
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gh-reinvite", "config.yml")
}

// Load reads and parses the config file at path. A missing file is not
// an error; built-in defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if c.Defaults.DelaySeconds < 0 {
		return fmt.Errorf("defaults.delay_seconds must be >= 0")
	}
	if c.Defaults.Permission != "" {
		if _, err := reinvite.ParsePermission(c.Defaults.Permission); err != nil {
			return fmt.Errorf("defaults.permission: %w", err)
		}
	}
	return nil
}

// Save writes the config to the given path, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
