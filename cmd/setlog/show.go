package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/setlog/internal/dayrecord"
	"github.com/verte-zerg/setlog/internal/exercises"
	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
)

const defaultWidth = 80

func newShowCmd(a *app) *cobra.Command {
	var (
		date string
		raw  bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a day's log as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.parseDate("date", date)
			if err != nil {
				return err
			}
			acc, closeFn, err := a.openRecords()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := commandContext(cmd)
			opts := a.cfg.DisplayOptions()
			lists := exercises.BuildLists(a.loadSettings(ctx, acc).Items, opts.MaxCheckboxes)
			rec := acc.OpenDay(ctx, day.Format(records.DateLayout))
			md := dayMarkdown(rec, lists, opts)

			out := cmd.OutOrStdout()
			if !raw && out == os.Stdout && isTerminal(os.Stdout) {
				rendered, err := renderMarkdown(md, terminalWidth(os.Stdout))
				if err != nil {
					return err
				}
				md = rendered
			}
			_, err = fmt.Fprint(out, md)
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print plain Markdown even on a terminal")
	return cmd
}

// dayMarkdown renders one day record grouped by category.
func dayMarkdown(rec model.DayRecord, lists model.ExerciseLists, opts model.DisplayOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Workout %s\n", rec.Date)
	for _, c := range model.Categories {
		items := lists.For(c)
		note := rec.Notes.Get(c)
		fmt.Fprintf(&b, "\n## %s\n\n", c.Label())
		if len(items) == 0 && opts.ShowPlaceholder(c) {
			b.WriteString("_No exercises_\n")
		}
		for _, item := range items {
			fmt.Fprintf(&b, "- **%s**: %s\n", item.Name, itemSummary(rec, item))
		}
		if note != "" {
			if len(items) > 0 || opts.ShowPlaceholder(c) {
				b.WriteString("\n")
			}
			for _, line := range strings.Split(note, "\n") {
				fmt.Fprintf(&b, "> %s\n", line)
			}
		}
	}
	return b.String()
}

func itemSummary(rec model.DayRecord, item model.DisplayItem) string {
	if item.InputMode == model.InputCount {
		counts := rec.Counts[item.ID]
		parts := make([]string, len(counts))
		for i, v := range counts {
			parts[i] = strconv.Itoa(v)
		}
		summary := "-"
		if len(parts) > 0 {
			summary = strings.Join(parts, ", ")
		}
		if item.Target != nil {
			summary += fmt.Sprintf(" (target %d)", *item.Target)
		}
		return summary
	}
	return fmt.Sprintf("%d/%d sets", dayrecord.CheckedCount(rec, item.ID), item.Sets)
}

func renderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

func terminalWidth(file *os.File) int {
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
