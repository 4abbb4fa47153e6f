// Package main provides the CLI entrypoint for setlog.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/setlog/internal/config"
	"github.com/verte-zerg/setlog/internal/logging"
	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
	"github.com/verte-zerg/setlog/internal/store"
	"github.com/verte-zerg/setlog/internal/tui"
)

func main() {
	rootCmd := newRootCmd(newApp())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every command after flag and config
// resolution.
type app struct {
	configPath string
	dbPath     string
	logPath    string
	verbose    bool

	cfg    config.FileConfig
	logger *zap.Logger
	now    func() time.Time
	ids    func() string
}

func newApp() *app {
	return &app{now: time.Now, logger: zap.NewNop()}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		date          string
		maxCheckboxes int
	)
	rootCmd := &cobra.Command{
		Use:           "setlog",
		Short:         "Terminal workout logger",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLog(cmd, date, maxCheckboxes)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&date, "date", "", "day to log (YYYY-MM-DD, default today)")
	rootCmd.Flags().IntVar(&maxCheckboxes, "max-checkboxes", config.DefaultMaxCheckboxes, "checkbox slots shown per exercise")

	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newExercisesCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newChartCmd(a))
	rootCmd.AddCommand(newImportCmd(a))

	return rootCmd
}

// setup loads .env, the config file and the logger. Flags win over config.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}
	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	a.configPath = path
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = fileCfg

	dbFromConfig := fileCfg.DBPath()
	applyStringConfig(cmd, "db", &a.dbPath, &dbFromConfig)

	level := fileCfg.LogLevel()
	if a.verbose {
		level = "debug"
	}
	if a.logPath == "" {
		a.logPath = config.DefaultLogPath()
	}
	logger, err := logging.New(level, a.logPath)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", a.configPath),
		zap.String("db", a.dbPath))
	return nil
}

func (a *app) openStore() (*store.Store, func(), error) {
	st, err := store.Open(a.dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			a.logger.Warn("failed to close db", zap.Error(cerr))
		}
	}
	return st, closeFn, nil
}

// openRecords opens the database and returns the storage access layer
// plus a close func.
func (a *app) openRecords() (*records.Access, func(), error) {
	st, closeFn, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	acc := records.New(st, a.logger)
	if a.ids != nil {
		acc = acc.WithIDs(a.ids)
	}
	return acc, closeFn, nil
}

func (a *app) today() time.Time {
	return a.now()
}

// parseDate parses a YYYY-MM-DD flag value; empty means today.
func (a *app) parseDate(flag, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return a.today(), nil
	}
	parsed, err := time.ParseInLocation(records.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s value: %w", flag, err)
	}
	return parsed, nil
}

func (a *app) runLog(cmd *cobra.Command, date string, maxCheckboxes int) error {
	day, err := a.parseDate("date", date)
	if err != nil {
		return err
	}
	display, err := a.logDisplay(cmd, maxCheckboxes)
	if err != nil {
		return err
	}

	acc, closeFn, err := a.openRecords()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := a.loadSettings(ctx, acc)
	m := tui.NewModel(ctx, acc, res.Items, tui.Options{
		Display: display,
		Date:    day,
		Now:     a.now,
		Logger:  a.logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// logDisplay resolves display options for the log screen. An explicit
// --max-checkboxes must be positive; config values that are not fall
// back to the default.
func (a *app) logDisplay(cmd *cobra.Command, maxCheckboxes int) (model.DisplayOptions, error) {
	display := a.cfg.DisplayOptions()
	if cmd.Flags().Changed("max-checkboxes") {
		if maxCheckboxes < 1 {
			return display, fmt.Errorf("--max-checkboxes must be > 0")
		}
		display.MaxCheckboxes = maxCheckboxes
	}
	return display, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
