// ABOUTME: FitLife configuration management and storage factory.
// ABOUTME: Handles the default user, data directory, and gesture tuning.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/fitlife/internal/storage"
	"github.com/harperreed/fitlife/internal/workout"
)

// Config stores fitlife tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; fitlife.db lives here.
	// Supports ~ expansion. Defaults to ~/.local/share/fitlife.
	DataDir string `json:"data_dir,omitempty"`

	// DefaultUser is the email of the user commands act as when no
	// --user flag is given.
	DefaultUser string `json:"default_user,omitempty"`

	// ShakeCooldownMS overrides the debounce window for shake-to-reset,
	// in milliseconds. Zero means the built-in default.
	ShakeCooldownMS int `json:"shake_cooldown_ms,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetShakeCooldown returns the configured shake debounce window.
func (c *Config) GetShakeCooldown() time.Duration {
	if c.ShakeCooldownMS <= 0 {
		return workout.DefaultShakeCooldown
	}
	return time.Duration(c.ShakeCooldownMS) * time.Millisecond
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite repository under the configured data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "fitlife.db")
	return storage.Open(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitlife", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
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
