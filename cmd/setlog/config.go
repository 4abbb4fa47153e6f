package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/setlog/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if err := ensureConfigFile(path); err != nil {
				return err
			}
			if printOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			}
			return openEditor(path)
		},
	}
	cmd.Flags().BoolVar(&printOnly, "path", false, "create the file if needed and print its path")
	return cmd
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func openEditor(path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# setlog configuration
# Uncomment a value to enable it. CLI flags and %s / %s
# environment variables override config values.

[storage]
# db = %q

[display]
# max-checkboxes = %d     # Checkbox slots shown per exercise
# max-count = %d         # Upper bound for a counted set
# status-seconds = %d      # How long "saved" stays visible (0 keeps it)

[display.empty-placeholder]
# upper = true            # Show "No exercises" for an empty section
# lower = true
# other = false

[log]
# level = %q          # debug, info, warn or error
`,
		config.EnvDB,
		config.EnvLogLevel,
		config.DefaultDBPath(),
		config.DefaultMaxCheckboxes,
		config.DefaultMaxCount,
		config.DefaultStatusSeconds,
		config.DefaultLogLevel,
	)
}
