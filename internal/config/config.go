package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the milestone configuration stored in config.yaml.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	DatabasePath  string `yaml:"database_path,omitempty"` // defaults to <data_dir>/milestone.db
	LogFile       string `yaml:"log_file,omitempty"`      // empty disables logging
	LogLevel      string `yaml:"log_level"`               // debug, info, warn, error
	Timezone      string `yaml:"timezone"`                // IANA name, "Local" or "UTC"
	UserID        string `yaml:"user_id"`
	StarterID     string `yaml:"starter_id"`     // achievement placed at the grid centre
	UnlockRetries int    `yaml:"unlock_retries"` // attempts per unlock write
}

// DefaultDataDir returns ~/.milestone.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".milestone"), nil
}

// Default returns the configuration used when no file exists.
func Default(dataDir string) *Config {
	return &Config{
		DataDir:       dataDir,
		LogFile:       filepath.Join(dataDir, "milestone.log"),
		LogLevel:      "info",
		Timezone:      "Local",
		UserID:        "local",
		StarterID:     "first_habit",
		UnlockRetries: 3,
	}
}

// LoadConfig reads config.yaml from dir. A missing file yields the defaults.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default(dir)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes config.yaml to cfg.DataDir.
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfg.DataDir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks field values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}
	if c.UnlockRetries < 1 {
		return fmt.Errorf("unlock_retries must be at least 1, got %d", c.UnlockRetries)
	}
	if c.StarterID == "" {
		return errors.New("starter_id cannot be empty")
	}
	return nil
}

// DBPath returns the database location.
func (c *Config) DBPath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDir, "milestone.db")
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
