// Package config loads and validates the duview configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"duview/internal/tui/styles"
	"duview/pkg/format"
)

// Config is the application configuration. Every field has a usable
// default, so an absent or partial file is fine.
type Config struct {
	Scan struct {
		Workers  int      `yaml:"workers"`  // Concurrent sizing workers (0 = one per CPU)
		Excludes []string `yaml:"excludes"` // Glob patterns matched against entry names, skipped with their subtrees
		Watch    bool     `yaml:"watch"`    // Flag the display as stale when scanned directories change
	} `yaml:"scan"`
	Display struct {
		ByteFormat string `yaml:"byte_format"` // metric, binary or bytes
	} `yaml:"display"`
	Theme styles.ThemeConfig `yaml:"theme"` // Widget color overrides
	Log   struct {
		File  string `yaml:"file"`  // Log file path; empty logs nowhere in interactive mode
		Debug bool   `yaml:"debug"` // Enable debug-level logging
	} `yaml:"log"`
}

// LoadConfig loads configuration from the default location
// (~/.config/duview/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "duview", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path. A
// missing file returns the defaults; a present file is decoded over the
// defaults so unset keys keep them.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Scan.Workers = 0
	cfg.Scan.Excludes = []string{}
	cfg.Scan.Watch = true

	cfg.Display.ByteFormat = "metric"

	return cfg
}

// New creates a configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file. It creates
// parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultPath returns where LoadConfig looks for the file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "duview", "config.yaml"), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan workers must be >= 0, got %d", c.Scan.Workers)
	}

	for _, pat := range c.Scan.Excludes {
		if pat == "" {
			return fmt.Errorf("exclude patterns cannot be empty")
		}
		if _, err := glob.Compile(pat); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pat, err)
		}
	}

	if _, err := format.ParseByteFormat(c.Display.ByteFormat); err != nil {
		return err
	}

	return nil
}
