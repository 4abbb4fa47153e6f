// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/setlog/internal/model"
)

// Defaults for display settings.
const (
	DefaultMaxCheckboxes = 5
	DefaultMaxCount      = 100
	DefaultStatusSeconds = 2
	DefaultLogLevel      = "info"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig maps storage-related settings.
type StorageConfig struct {
	DB *string `toml:"db"`
}

// DisplayConfig maps how the log screen renders exercises.
type DisplayConfig struct {
	MaxCheckboxes    *int            `toml:"max-checkboxes"`
	MaxCount         *int            `toml:"max-count"`
	StatusSeconds    *int            `toml:"status-seconds"`
	EmptyPlaceholder map[string]bool `toml:"empty-placeholder"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for name := range cfg.Display.EmptyPlaceholder {
		if _, ok := model.ParseCategory(name); !ok {
			return FileConfig{}, fmt.Errorf("unknown category %q in display.empty-placeholder", name)
		}
	}
	return cfg, nil
}

// DefaultDisplayOptions returns display options with nothing configured.
// Empty upper and lower sections show a placeholder; other stays blank.
func DefaultDisplayOptions() model.DisplayOptions {
	return model.DisplayOptions{
		MaxCheckboxes:  DefaultMaxCheckboxes,
		MaxCount:       DefaultMaxCount,
		StatusDuration: DefaultStatusSeconds * time.Second,
		EmptyPlaceholder: map[model.Category]bool{
			model.CategoryUpper: true,
			model.CategoryLower: true,
			model.CategoryOther: false,
		},
	}
}

// DisplayOptions applies configured values over the defaults.
func (c FileConfig) DisplayOptions() model.DisplayOptions {
	opts := DefaultDisplayOptions()
	if v := c.Display.MaxCheckboxes; v != nil && *v > 0 {
		opts.MaxCheckboxes = *v
	}
	if v := c.Display.MaxCount; v != nil && *v > 0 {
		opts.MaxCount = *v
	}
	if v := c.Display.StatusSeconds; v != nil && *v >= 0 {
		opts.StatusDuration = time.Duration(*v) * time.Second
	}
	for name, show := range c.Display.EmptyPlaceholder {
		if cat, ok := model.ParseCategory(name); ok {
			opts.EmptyPlaceholder[cat] = show
		}
	}
	return opts
}
