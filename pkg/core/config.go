// pkg/core/config.go
package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds devshell configuration
type Config struct {
	ManifestPath string `yaml:"manifest_path"`
	LockPath     string `yaml:"lock_path"`
	CacheDir     string `yaml:"cache_dir"`
	Debug        bool   `yaml:"debug"`

	logger *log.Logger
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		ManifestPath: "", // devshell.toml in the working directory
		LockPath:     "", // devshell.lock in the working directory
		CacheDir:     getDefaultCacheDir(),
		Debug:        false,
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "devshell", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = getDefaultCacheDir()
	}

	return &cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "devshell", "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Logger returns the configured logger: stderr with a debug prefix
// when Debug is set, discarded otherwise.
func (c *Config) Logger() *log.Logger {
	if c.logger == nil {
		if c.Debug {
			c.logger = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
		} else {
			c.logger = log.New(io.Discard, "", 0)
		}
	}
	return c.logger
}

func getDefaultCacheDir() string {
	if dir := os.Getenv("DEVSHELL_CACHE_DIR"); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "devshell")
	}

	return filepath.Join(home, ".cache", "devshell")
}
