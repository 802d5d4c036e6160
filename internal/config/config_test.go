package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 4310 {
		t.Errorf("expected default port 4310, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != "badger" {
		t.Errorf("expected badger driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Notify.Capability != "cron" {
		t.Errorf("expected cron capability, got %s", cfg.Notify.Capability)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("default config should validate, got issues: %v", issues)
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfel-advisor.toml")
	content := `
[server]
port = 9000

[storage]
driver = "memory"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host retained, got %s", cfg.Server.Host)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("expected memory driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/portfel.toml")
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORTFEL_SERVER_PORT", "8123")
	t.Setenv("PORTFEL_LOG_LEVEL", "warn")
	t.Setenv("PORTFEL_NOTIFY_CAPABILITY", "none")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 8123 {
		t.Errorf("expected env port 8123, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Notify.Capability != "none" {
		t.Errorf("expected env capability none, got %s", cfg.Notify.Capability)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, 7777, "0.0.0.0")

	if cfg.Server.Port != 7777 {
		t.Errorf("expected flag port 7777, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected flag host 0.0.0.0, got %s", cfg.Server.Host)
	}
}

func TestValidateRejectsBadDriver(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Storage.Driver = "postgres"

	if issues := cfg.Validate(); len(issues) == 0 {
		t.Error("expected validation issue for unknown driver")
	}
}
