// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "setlog"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the path for the SQLite database.
// SETLOG_DB overrides the XDG location.
func DefaultDBPath() string {
	if v := os.Getenv(EnvDB); v != "" {
		return expandHome(v)
	}
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultLogPath returns the path of the log file.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".log")
}

// DefaultConfigPath returns the TOML config path.
// SETLOG_CONFIG overrides the XDG location.
func DefaultConfigPath() string {
	if v := os.Getenv(EnvConfig); v != "" {
		return expandHome(v)
	}
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
