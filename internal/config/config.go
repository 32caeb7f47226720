// Package config handles the client's TOML configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the hosted backend; the relay server lives on the
// same origin.
const DefaultBaseURL = "https://connectnow-backend-zjl4.onrender.com"

// Config represents ~/.cctui/config.toml.
type Config struct {
	BaseURL   string `toml:"base_url"`
	SocketURL string `toml:"socket_url"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
}

// DefaultDir returns the per-user data directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cctui"
	}
	return filepath.Join(home, ".cctui")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// Load reads config from the given path. A missing file yields the
// defaults rather than an error; a malformed file does not.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.SocketURL == "" {
		c.SocketURL = c.BaseURL
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LogPath returns the log file location inside the data dir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "cctui.log")
}

// CachePath returns the chat-metadata cache location inside the data dir.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}
