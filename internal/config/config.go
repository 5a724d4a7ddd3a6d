// ABOUTME: calibctl configuration management with backend selection.
// ABOUTME: Loads a JSON config file, applies environment overrides, and opens storage.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/undistort/internal/storage"
	"github.com/mitchellh/go-homedir"
)

// Backend names.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Backends lists every supported backend.
var Backends = []string{BackendYAML, BackendSQLite, BackendBadger}

// Config stores calibctl configuration.
type Config struct {
	// Backend selects the storage backend: "yaml" (default), "sqlite", or "badger".
	Backend string `json:"backend,omitempty" env:"CALIBCTL_BACKEND"`

	// DataDir is the root directory for the sqlite and badger backends.
	// Supports ~ expansion. Defaults to $XDG_DATA_HOME/calibctl.
	DataDir string `json:"data_dir,omitempty" env:"CALIBCTL_DATA_DIR"`

	// File is the calibrations file for the yaml backend.
	// Relative paths resolve against the working directory.
	File string `json:"file,omitempty" env:"CALIBCTL_FILE"`
}

// GetBackend returns the configured backend, defaulting to "yaml".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendYAML
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetFile returns the YAML calibrations file with ~ expanded.
func (c *Config) GetFile() string {
	if c.File == "" {
		return storage.DefaultYAMLFile
	}
	return ExpandPath(c.File)
}

// ExpandPath expands a leading ~ to the user's home directory.
// Paths it cannot expand are returned unchanged.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case BackendYAML:
		return storage.NewYAMLStore(c.GetFile()), nil
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), "calibrations.db"))
	case BackendBadger:
		return storage.OpenBadger(filepath.Join(c.GetDataDir(), "badger"))
	default:
		return nil, fmt.Errorf("unknown backend: %q (use yaml, sqlite, or badger)", backend)
	}
}

// Location describes where the configured backend keeps its data.
func (c *Config) Location() string {
	switch c.GetBackend() {
	case BackendYAML:
		return c.GetFile()
	case BackendSQLite:
		return filepath.Join(c.GetDataDir(), "calibrations.db")
	case BackendBadger:
		return filepath.Join(c.GetDataDir(), "badger")
	default:
		return ""
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "calibctl", "config.json")
}

// Load reads config from disk, then applies CALIBCTL_* environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads config from disk without environment overrides.
func LoadFile() (*Config, error) {
	return loadFile(GetConfigPath())
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
