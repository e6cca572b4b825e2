package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reportd.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabasePath == "" {
		t.Fatalf("expected default database path")
	}
	if cfg.Timezone != "Local" {
		t.Fatalf("expected Local timezone default, got %q", cfg.Timezone)
	}
	if cfg.LoggerLevel() != slog.LevelInfo {
		t.Fatalf("expected info level default, got %v", cfg.LoggerLevel())
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := writeConfig(t, `
database_path: /tmp/reports.db
timezone: Asia/Tokyo
default_user: u-yamada
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabasePath != "/tmp/reports.db" || cfg.DefaultUser != "u-yamada" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "Asia/Tokyo" {
		t.Fatalf("unexpected location: %v", loc)
	}
	if cfg.LoggerLevel() != slog.LevelDebug {
		t.Fatalf("unexpected level: %v", cfg.LoggerLevel())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "default_user: u-file\n")
	t.Setenv("REPORTD_DEFAULT_USER", "u-env")
	t.Setenv("REPORTD_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultUser != "u-env" {
		t.Fatalf("env override lost: %q", cfg.DefaultUser)
	}
	if cfg.LoggerLevel() != slog.LevelWarn {
		t.Fatalf("unexpected level: %v", cfg.LoggerLevel())
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	path := writeConfig(t, "timezone: Mars/Olympus\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "database_path: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
