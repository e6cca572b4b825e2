package update

import (
	"os"
	"strconv"
	"strings"
)

// RuntimeConfig carries viewer-only knobs read from the environment,
// separate from the file-backed application config.
type RuntimeConfig struct {
	ExportDir          string
	StatusClearSeconds int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ExportDir:          ".",
		StatusClearSeconds: 5,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("REPORTD_EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
	if v, ok := getEnvInt("REPORTD_STATUS_CLEAR_SECONDS"); ok && v > 0 {
		cfg.StatusClearSeconds = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
