package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/stats"
	"github.com/verte-zerg/setlog/internal/statsui"
)

const (
	defaultHistoryWindow = 7
	defaultChartTop      = 3
	defaultChartFile     = "setlog-chart.html"
)

type rangeFlags struct {
	since string
	until string
	days  int
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.since, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.until, "until", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.days, "days", 0, "limit to the last N days")
}

func (f *rangeFlags) historyConfig(a *app) (model.HistoryConfig, error) {
	if f.days < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--days must be >= 0")
	}
	cfg := model.HistoryConfig{Days: f.days}
	if f.since != "" {
		since, err := a.parseDate("since", f.since)
		if err != nil {
			return cfg, err
		}
		cfg.Since = &since
	}
	if f.until != "" {
		until, err := a.parseDate("until", f.until)
		if err != nil {
			return cfg, err
		}
		cfg.Until = &until
	}
	return cfg, nil
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		rng         rangeFlags
		window      int
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show per-exercise totals and daily volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rng.historyConfig(a)
			if err != nil {
				return err
			}
			if window < 1 {
				return fmt.Errorf("--window must be > 0")
			}
			acc, closeFn, err := a.openRecords()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := commandContext(cmd)
			items := a.loadSettings(ctx, acc).Items
			if interactive {
				m := statsui.NewModel(ctx, acc, items, cfg, window, a.now)
				program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
				if _, err := program.Run(); err != nil {
					return fmt.Errorf("failed to run history TUI: %w", err)
				}
				return nil
			}

			report := stats.BuildReport(ctx, acc, items, cfg, a.today())
			width := defaultWidth
			if cmd.OutOrStdout() == os.Stdout && isTerminal(os.Stdout) {
				width = terminalWidth(os.Stdout)
			}
			return writeHistory(cmd.OutOrStdout(), report, window, width)
		},
	}
	rng.register(cmd)
	cmd.Flags().IntVar(&window, "window", defaultHistoryWindow, "moving average window in days")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse history in a TUI")
	return cmd
}

func writeHistory(w io.Writer, report stats.Report, window, width int) error {
	if err := stats.RenderSummary(w, report); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if len(report.Days) == 0 {
		return nil
	}
	if err := stats.RenderTotals(w, report.Totals); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}
	if err := stats.RenderVolume(w, report.Volume, window, width-5); err != nil {
		return fmt.Errorf("failed to write volume: %w", err)
	}
	if err := stats.RenderNeglected(w, report.Neglected); err != nil {
		return fmt.Errorf("failed to write exercises: %w", err)
	}
	return nil
}

func newChartCmd(a *app) *cobra.Command {
	var (
		rng    rangeFlags
		window int
		top    int
		out    string
		open   bool
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Write an HTML chart of training volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rng.historyConfig(a)
			if err != nil {
				return err
			}
			if window < 1 {
				return fmt.Errorf("--window must be > 0")
			}
			acc, closeFn, err := a.openRecords()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := commandContext(cmd)
			report := stats.BuildReport(ctx, acc, a.loadSettings(ctx, acc).Items, cfg, a.today())
			path, err := writeChartFile(out, report, stats.ChartOptions{Window: window, Top: top})
			if err != nil {
				return err
			}
			a.logger.Info("chart written", zap.String("path", path), zap.Int("days", len(report.Days)))
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path); err != nil {
				return err
			}
			if open {
				if err := browser.OpenFile(path); err != nil {
					return fmt.Errorf("failed to open browser: %w", err)
				}
			}
			return nil
		},
	}
	rng.register(cmd)
	cmd.Flags().IntVar(&window, "window", 1, "moving average window in days")
	cmd.Flags().IntVar(&top, "top", defaultChartTop, "number of exercises plotted individually")
	cmd.Flags().StringVarP(&out, "out", "o", defaultChartFile, "output HTML file")
	cmd.Flags().BoolVar(&open, "open", false, "open the chart in a browser")
	return cmd
}

func writeChartFile(path string, report stats.Report, opt stats.ChartOptions) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create chart: %w", err)
	}
	if err := stats.WriteChart(f, report, opt); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close chart: %w", err)
	}
	return abs, nil
}
