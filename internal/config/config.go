package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Notify  NotifyConfig  `toml:"notify"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Driver string       `toml:"driver"` // "badger" or "memory"
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NotifyConfig contains notification capability settings.
type NotifyConfig struct {
	// Capability selects the local notification backend: "cron" arms
	// real repeating alarms in-process, "none" disables notifications
	// entirely (permission checks report false).
	Capability string `toml:"capability"`
	Channel    string `toml:"channel"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies PORTFEL_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("PORTFEL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PORTFEL_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if driver := os.Getenv("PORTFEL_STORAGE_DRIVER"); driver != "" {
		config.Storage.Driver = driver
	}
	if badgerPath := os.Getenv("PORTFEL_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("PORTFEL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if capability := os.Getenv("PORTFEL_NOTIFY_CAPABILITY"); capability != "" {
		config.Notify.Capability = capability
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory configuration and returns a list of issues.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	switch c.Storage.Driver {
	case "badger":
		if c.Storage.Badger.Path == "" {
			issues = append(issues, "storage.badger.path is required for the badger driver")
		}
	case "memory":
	default:
		issues = append(issues, fmt.Sprintf("storage.driver must be badger or memory, got %q", c.Storage.Driver))
	}
	switch c.Notify.Capability {
	case "cron", "none":
	default:
		issues = append(issues, fmt.Sprintf("notify.capability must be cron or none, got %q", c.Notify.Capability))
	}
	return issues
}
