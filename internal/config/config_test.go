package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/setlog/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	opts := cfg.DisplayOptions()
	if opts.MaxCheckboxes != DefaultMaxCheckboxes || opts.MaxCount != DefaultMaxCount {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if !opts.ShowPlaceholder(model.CategoryUpper) || !opts.ShowPlaceholder(model.CategoryLower) {
		t.Fatalf("expected placeholders for upper and lower")
	}
	if opts.ShowPlaceholder(model.CategoryOther) {
		t.Fatalf("expected no placeholder for other")
	}
}

func TestLoadConfigDisplayOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", `
[storage]
db = "/tmp/custom.db"

[display]
max-checkboxes = 8
status-seconds = 0

[display.empty-placeholder]
other = true
lower = false

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	opts := cfg.DisplayOptions()
	if opts.MaxCheckboxes != 8 {
		t.Fatalf("expected 8 checkboxes, got %d", opts.MaxCheckboxes)
	}
	if opts.MaxCount != DefaultMaxCount {
		t.Fatalf("expected default max count, got %d", opts.MaxCount)
	}
	if opts.StatusDuration != 0*time.Second {
		t.Fatalf("expected zero status duration, got %v", opts.StatusDuration)
	}
	if !opts.ShowPlaceholder(model.CategoryOther) || opts.ShowPlaceholder(model.CategoryLower) || !opts.ShowPlaceholder(model.CategoryUpper) {
		t.Fatalf("unexpected placeholders: %+v", opts.EmptyPlaceholder)
	}

	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")
	if got := cfg.DBPath(); got != "/tmp/custom.db" {
		t.Fatalf("expected configured db path, got %q", got)
	}
	if got := cfg.LogLevel(); got != "debug" {
		t.Fatalf("expected debug level, got %q", got)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	db := "/tmp/from-config.db"
	level := "warn"
	cfg := FileConfig{Storage: StorageConfig{DB: &db}, Log: LogConfig{Level: &level}}

	t.Setenv(EnvDB, "/tmp/from-env.db")
	t.Setenv(EnvLogLevel, "error")
	if got := cfg.DBPath(); got != "/tmp/from-env.db" {
		t.Fatalf("expected env db path, got %q", got)
	}
	if got := cfg.LogLevel(); got != "error" {
		t.Fatalf("expected env log level, got %q", got)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "config.toml", "[display]\nmax-checkbox = 3\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
	path = writeFile(t, "config2.toml", "[display.empty-placeholder]\ncore = true\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown category error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	t.Setenv(EnvConfig, "")
	os.Unsetenv(EnvConfig)
	path := writeFile(t, ".env", "SETLOG_CONFIG=/tmp/setlog-test.toml\n")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := DefaultConfigPath(); got != "/tmp/setlog-test.toml" {
		t.Fatalf("expected config path from .env, got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/lifter")
	cases := map[string]string{
		"":             "",
		"/abs/path.db": "/abs/path.db",
		"~":            "/home/lifter",
		"~/data/x.db":  "/home/lifter/data/x.db",
		"~other/x":     "~other/x",
	}
	for in, want := range cases {
		if got := expandHome(in); got != want {
			t.Fatalf("expandHome(%q) = %q, want %q", in, got, want)
		}
	}
}
