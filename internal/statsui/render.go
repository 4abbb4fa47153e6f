package statsui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/stats"
)

var (
	accentColor = lipgloss.Color("#7FB069")
	mutedColor  = lipgloss.Color("#7A7A7A")

	accentStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5533D"))
	tableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C8C8C8"))
	paneOnStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Underline(true).Padding(0, 1)
	paneOffStyle = lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)
	statStyle    = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(accentColor).
			PaddingLeft(1).
			MarginRight(2)
)

func (m *Model) renderHeader() string {
	tabs := make([]string, 0, int(paneCount))
	for p := paneOverview; p < paneCount; p++ {
		style := paneOffStyle
		if p == m.pane {
			style = paneOnStyle
		}
		tabs = append(tabs, style.Render(p.title()))
	}
	from, to := m.report.From, m.report.To
	if from == "" {
		from = "first log"
	}
	if to == "" {
		to = "today"
	}
	rng := fmt.Sprintf("%s .. %s  smoothing %dd", from, to, m.window)
	return "setlog history " + strings.Join(tabs, "") + "\n" + mutedStyle.Render(clip(rng, m.width))
}

func (m *Model) renderFooter() string {
	if m.form.active {
		return mutedStyle.Render("tab next field · enter apply · esc cancel")
	}
	return mutedStyle.Render(clip("tab/←→ pane · ↑↓ scroll · -/= smoothing · / range · q quit", m.width))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Days) == 0 {
		return "Nothing logged in range."
	}
	var buf bytes.Buffer
	buf.WriteString(statStrip(report, width))
	buf.WriteString("\n\n")
	if err := stats.RenderVolume(&buf, report.Volume, window, width-5); err != nil {
		return errorStyle.Render(err.Error())
	}
	if err := stats.RenderNeglected(&buf, report.Neglected); err != nil {
		return errorStyle.Render(err.Error())
	}
	return strings.TrimRight(buf.String(), "\n")
}

// statStrip lays out headline numbers side by side, stacking them on
// narrow terminals.
func statStrip(report stats.Report, width int) string {
	active, sets, reps := 0, 0, 0
	for _, v := range report.Volume {
		if v.Sets > 0 {
			active++
		}
		sets += v.Sets
		reps += v.Reps
	}
	stat := func(label string, value int) string {
		return statStyle.Render(mutedStyle.Render(label) + "\n" + accentStyle.Render(strconv.Itoa(value)))
	}
	blocks := []string{
		stat("Days", len(report.Days)),
		stat("Active", active),
		stat("Streak", report.Streak),
		stat("Sets", sets),
		stat("Reps", reps),
	}
	if width < 60 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// renderDays lists days newest first with per-exercise lines and notes.
func renderDays(report stats.Report, items []model.ExerciseConfig, width int) string {
	if len(report.Days) == 0 {
		return "Nothing logged in range."
	}
	var b strings.Builder
	for i := len(report.Days) - 1; i >= 0; i-- {
		rec, vol := report.Days[i], report.Volume[i]
		fmt.Fprintf(&b, "%s %s\n", accentStyle.Render(rec.Date), mutedStyle.Render(fmt.Sprintf("%d sets, %d reps", vol.Sets, vol.Reps)))
		for _, t := range stats.Summarize([]model.DayRecord{rec}, items) {
			line := fmt.Sprintf("  %-20s %2d sets", clip(t.Name, 20), t.Sets)
			if t.Reps > 0 {
				line += fmt.Sprintf("  %3d reps", t.Reps)
			}
			b.WriteString(line + "\n")
		}
		for _, c := range model.Categories {
			if note := rec.Notes.Get(c); note != "" {
				b.WriteString(mutedStyle.Render(clip(fmt.Sprintf("  %s: %s", c.Label(), note), width)) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func newTotalsTable() table.Model {
	t := table.New(table.WithColumns([]table.Column{
		{Title: "Exercise", Width: 20},
		{Title: "Category", Width: 10},
		{Title: "Days", Width: 5},
		{Title: "Sets", Width: 6},
		{Title: "Reps", Width: 7},
		{Title: "Best", Width: 5},
		{Title: "On", Width: 10},
	}))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(mutedColor).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(accentColor).Bold(true)
	t.SetStyles(styles)
	return t
}

func totalsRows(totals []model.ExerciseTotals) []table.Row {
	rows := make([]table.Row, 0, len(totals))
	for _, t := range totals {
		best, on := "-", "-"
		if t.BestReps > 0 {
			best, on = strconv.Itoa(t.BestReps), t.BestDate
		}
		rows = append(rows, table.Row{
			t.Name,
			t.Category.Label(),
			strconv.Itoa(t.Days),
			strconv.Itoa(t.Sets),
			strconv.Itoa(t.Reps),
			best,
			on,
		})
	}
	return rows
}
