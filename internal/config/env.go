package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvDB       = "SETLOG_DB"
	EnvConfig   = "SETLOG_CONFIG"
	EnvLogLevel = "SETLOG_LOG_LEVEL"
)

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// DBPath resolves the database path: environment, then config, then XDG default.
func (c FileConfig) DBPath() string {
	if os.Getenv(EnvDB) == "" && c.Storage.DB != nil && strings.TrimSpace(*c.Storage.DB) != "" {
		return expandHome(strings.TrimSpace(*c.Storage.DB))
	}
	return DefaultDBPath()
}

// LogLevel resolves the log level: environment, then config, then default.
func (c FileConfig) LogLevel() string {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		return v
	}
	if c.Log.Level != nil && strings.TrimSpace(*c.Log.Level) != "" {
		return strings.TrimSpace(*c.Log.Level)
	}
	return DefaultLogLevel
}
