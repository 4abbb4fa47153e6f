package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/setlog/internal/records"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-browser <file.json>",
		Short: "Import a JSON dump of the web app's local storage",
		Long: `Import a JSON object mapping storage keys to values, as exported
from the browser version. Only exercises, settings-v1 and day-record-*
keys are kept; existing keys are overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			entries, err := parseStorageDump(data)
			if err != nil {
				return err
			}
			st, closeFn, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := st.ImportLegacy(commandContext(cmd), entries, records.IsKnownKey)
			if err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}
			a.logger.Info("imported browser storage",
				zap.String("file", args[0]),
				zap.Int("keys", n),
				zap.Int("skipped", len(entries)-n))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keys (%d skipped)\n", n, len(entries)-n)
			return err
		},
	}
}

// parseStorageDump reads a key to value object. Values are normally the
// stored JSON strings; embedded objects are kept as their JSON text.
func parseStorageDump(data []byte) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse storage dump: %w", err)
	}
	entries := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			entries[key] = s
			continue
		}
		entries[key] = string(value)
	}
	return entries, nil
}
