package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/setlog/internal/exercises"
	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
	"github.com/verte-zerg/setlog/internal/stats"
)

// loadSettings resolves the catalog and persists a migrated legacy list.
func (a *app) loadSettings(ctx context.Context, acc *records.Access) exercises.Resolution {
	res := acc.LoadSettings(ctx)
	if res.Source == exercises.SourceLegacy {
		acc.SaveSettings(ctx, model.Settings{Items: res.Items})
	}
	return res
}

// editCatalog loads the catalog, applies fn and saves the result.
func (a *app) editCatalog(cmd *cobra.Command, fn func(*exercises.Catalog) error) error {
	acc, closeFn, err := a.openRecords()
	if err != nil {
		return err
	}
	defer closeFn()
	return a.applyCatalogEdit(commandContext(cmd), acc, fn)
}

// applyCatalogEdit runs fn over the resolved catalog. Errors from fn are
// returned; a failed save is only logged, like every other storage write.
func (a *app) applyCatalogEdit(ctx context.Context, acc *records.Access, fn func(*exercises.Catalog) error) error {
	cat := exercises.NewCatalog(a.loadSettings(ctx, acc).Items, acc.NewID())
	if err := fn(cat); err != nil {
		return err
	}
	if !acc.SaveSettings(ctx, cat.Settings()) {
		a.logger.Debug("catalog change not persisted", zap.Int("items", len(cat.Items())))
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newExercisesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"ex"},
		Short:   "Manage the exercise catalog",
	}
	cmd.AddCommand(newExercisesListCmd(a))
	cmd.AddCommand(newExercisesAddCmd(a))
	cmd.AddCommand(newExercisesSetCmd(a))
	cmd.AddCommand(newExercisesMoveCmd(a))
	cmd.AddCommand(newExercisesToggleCmd(a, "enable", true))
	cmd.AddCommand(newExercisesToggleCmd(a, "disable", false))
	cmd.AddCommand(newExercisesRemoveCmd(a))
	cmd.AddCommand(newExercisesExportCmd(a))
	cmd.AddCommand(newExercisesImportCmd(a))
	return cmd
}

func newExercisesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exercises by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, closeFn, err := a.openRecords()
			if err != nil {
				return err
			}
			defer closeFn()
			res := a.loadSettings(commandContext(cmd), acc)
			return writeExerciseList(cmd.OutOrStdout(), res.Items)
		},
	}
}

func writeExerciseList(w io.Writer, items []model.ExerciseConfig) error {
	sorted := sortedItems(items)
	headers := []string{"ID", "Name", "Category", "Mode", "Sets", "Target", "Enabled"}
	rows := make([][]string, 0, len(sorted))
	for _, item := range sorted {
		sets, target := "-", "-"
		if item.InputMode == model.InputCount {
			if item.TargetCount != nil {
				target = strconv.Itoa(*item.TargetCount)
			}
		} else {
			sets = strconv.Itoa(exercises.ResolveCheckCount(item))
		}
		enabled := "yes"
		if !item.Enabled {
			enabled = "no"
		}
		rows = append(rows, []string{
			shortID(item.ID),
			item.Name,
			string(item.Category),
			string(item.InputMode),
			sets,
			target,
			enabled,
		})
	}
	return stats.WriteTable(w, headers, rows, map[int]bool{4: true, 5: true})
}

// sortedItems orders items by category then order, disabled ones included.
func sortedItems(items []model.ExerciseConfig) []model.ExerciseConfig {
	rank := map[model.Category]int{}
	for i, c := range model.Categories {
		rank[c] = i
	}
	out := append([]model.ExerciseConfig(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if rank[out[i].Category] != rank[out[j].Category] {
			return rank[out[i].Category] < rank[out[j].Category]
		}
		return out[i].Order < out[j].Order
	})
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type exerciseFlags struct {
	name        string
	category    string
	mode        string
	sets        int
	target      int
	clearTarget bool
}

func (f *exerciseFlags) register(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "display name")
	}
	cmd.Flags().StringVar(&f.category, "category", string(model.CategoryOther), "upper, lower or other")
	cmd.Flags().StringVar(&f.mode, "mode", string(model.InputCheck), "check or count")
	cmd.Flags().IntVar(&f.sets, "sets", exercises.DefaultCheckCount, "checkbox sets (check mode)")
	cmd.Flags().IntVar(&f.target, "target", 0, "target count (count mode)")
	cmd.Flags().BoolVar(&f.clearTarget, "clear-target", false, "remove the target count")
}

// apply writes every changed flag to the exercise with id.
func (f *exerciseFlags) apply(cmd *cobra.Command, cat *exercises.Catalog, id string) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		name := strings.TrimSpace(f.name)
		if name == "" {
			return fmt.Errorf("--name must not be empty")
		}
		if err := cat.Rename(id, name); err != nil {
			return err
		}
	}
	if changed("category") {
		c, ok := model.ParseCategory(strings.ToLower(f.category))
		if !ok {
			return fmt.Errorf("invalid --category %q (use upper, lower or other)", f.category)
		}
		if err := cat.SetCategory(id, c); err != nil {
			return err
		}
	}
	if changed("mode") {
		mode, ok := model.ParseInputMode(strings.ToLower(f.mode))
		if !ok {
			return fmt.Errorf("invalid --mode %q (use check or count)", f.mode)
		}
		if err := cat.SetInputMode(id, mode); err != nil {
			return err
		}
	}
	if changed("sets") {
		if f.sets < 1 {
			return fmt.Errorf("--sets must be > 0")
		}
		if err := cat.SetCheckCount(id, f.sets); err != nil {
			return err
		}
	}
	if changed("target") {
		if f.target < 0 {
			return fmt.Errorf("--target must be >= 0")
		}
		target := f.target
		if err := cat.SetTarget(id, &target); err != nil {
			return err
		}
	}
	if f.clearTarget {
		return cat.SetTarget(id, nil)
	}
	return nil
}

func newExercisesAddCmd(a *app) *cobra.Command {
	var flags exerciseFlags
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("name must not be empty")
			}
			category, ok := model.ParseCategory(strings.ToLower(flags.category))
			if !ok {
				return fmt.Errorf("invalid --category %q (use upper, lower or other)", flags.category)
			}
			var added model.ExerciseConfig
			err := a.editCatalog(cmd, func(cat *exercises.Catalog) error {
				added = cat.Add(category, name)
				if err := flags.apply(cmd, cat, added.ID); err != nil {
					return err
				}
				added, _ = cat.Lookup(added.ID)
				return nil
			})
			if err != nil {
				return err
			}
			a.logger.Info("exercise added", zap.String("id", added.ID), zap.String("name", added.Name))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Name, added.ID)
			return err
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newExercisesSetCmd(a *app) *cobra.Command {
	var flags exerciseFlags
	cmd := &cobra.Command{
		Use:   "set <id|name>",
		Short: "Change exercise fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editCatalog(cmd, func(cat *exercises.Catalog) error {
				item, err := cat.Lookup(args[0])
				if err != nil {
					return err
				}
				return flags.apply(cmd, cat, item.ID)
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newExercisesMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "move <id|name> <up|down>",
		Short:     "Move an exercise within its category",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var delta int
			switch strings.ToLower(args[1]) {
			case "up":
				delta = -1
			case "down":
				delta = 1
			default:
				return fmt.Errorf("direction must be up or down")
			}
			moved := false
			err := a.editCatalog(cmd, func(cat *exercises.Catalog) error {
				item, err := cat.Lookup(args[0])
				if err != nil {
					return err
				}
				moved, err = cat.Move(item.ID, delta)
				return err
			})
			if err != nil {
				return err
			}
			if !moved {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Already at the edge of its category.")
			}
			return err
		},
	}
}

func newExercisesToggleCmd(a *app, use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id|name>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editCatalog(cmd, func(cat *exercises.Catalog) error {
				item, err := cat.Lookup(args[0])
				if err != nil {
					return err
				}
				return cat.SetEnabled(item.ID, enabled)
			})
		},
	}
}

func newExercisesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id|name>",
		Aliases: []string{"rm"},
		Short:   "Remove an exercise (logged history is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editCatalog(cmd, func(cat *exercises.Catalog) error {
				item, err := cat.Lookup(args[0])
				if err != nil {
					return err
				}
				return cat.Remove(item.ID)
			})
		},
	}
}

func newExercisesExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, closeFn, err := a.openRecords()
			if err != nil {
				return err
			}
			defer closeFn()
			settings := model.Settings{Items: a.loadSettings(commandContext(cmd), acc).Items}
			if format == "" {
				format = formatFromPath(out)
			}
			data, err := encodeSettings(settings, format)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from --out extension, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newExercisesImportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if format == "" {
				format = formatFromPath(args[0])
			}
			count := 0
			err = a.editCatalog(cmd, func(cat *exercises.Catalog) error {
				items, err := decodeSettings(data, format, a.ids)
				if err != nil {
					return err
				}
				count = len(items)
				*cat = *exercises.NewCatalog(items, nil)
				return nil
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d exercises\n", count)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from file extension, else json)")
	return cmd
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func encodeSettings(settings model.Settings, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(settings)
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (use json or yaml)", format)
	}
}

// decodeSettings parses an exported catalog and runs it through the same
// defaulting as stored settings.
func decodeSettings(data []byte, format string, newID exercises.NewID) ([]model.ExerciseConfig, error) {
	raw := data
	if format == "yaml" {
		var doc struct {
			Items []map[string]any `yaml:"items" json:"items"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert yaml: %w", err)
		}
		raw = converted
	} else if format != "json" {
		return nil, fmt.Errorf("unknown format %q (use json or yaml)", format)
	}
	res := exercises.Resolve(raw, nil, newID)
	if res.Source != exercises.SourceSettings {
		return nil, fmt.Errorf("no exercises found in file")
	}
	return res.Items, nil
}
