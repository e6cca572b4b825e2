// Package config loads the reportd configuration from a YAML file and
// layers REPORTD_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

type Config struct {
	// DatabasePath is the sqlite file backing templates, occurrences and
	// tasks. A relative path resolves against the working directory.
	DatabasePath string `yaml:"database_path"`
	// Timezone names the IANA location all report dates are computed in.
	Timezone string `yaml:"timezone"`
	// DefaultUser preselects whose report opens on startup. Empty shows
	// every row.
	DefaultUser string `yaml:"default_user"`
	LogLevel    string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		DatabasePath: defaultDatabasePath(),
		Timezone:     "Local",
		LogLevel:     "info",
	}
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "reportd.db"
	}
	return filepath.Join(home, ".reportd", "reportd.db")
}

// Load reads the YAML file at path and applies environment overrides. A
// missing file is not an error; defaults plus environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// fall through to env overrides
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg = fromEnv(cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("REPORTD_DATABASE_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvString("REPORTD_TIMEZONE"); ok {
		cfg.Timezone = v
	}
	if v, ok := getEnvString("REPORTD_DEFAULT_USER"); ok {
		cfg.DefaultUser = v
	}
	if v, ok := getEnvString("REPORTD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return cfg
}

func (c Config) validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return errors.New("config: database_path is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: bad timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone. "Local" and an empty value
// both mean the process local zone.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "Local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func (c Config) LoggerLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
