// Package statsui provides the Bubble Tea history browser.
package statsui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
	"github.com/verte-zerg/setlog/internal/stats"
)

type pane int

const (
	paneOverview pane = iota
	paneExercises
	paneDays
	paneCount
)

func (p pane) title() string {
	switch p {
	case paneOverview:
		return "Overview"
	case paneExercises:
		return "Exercises"
	default:
		return "Days"
	}
}

// Model browses logged days over a date range.
type Model struct {
	ctx   context.Context
	acc   *records.Access
	items []model.ExerciseConfig
	now   func() time.Time

	cfg    model.HistoryConfig
	window int
	report stats.Report

	pane     pane
	overview viewport.Model
	days     viewport.Model
	totals   table.Model
	form     rangeForm

	width  int
	height int
}

// NewModel builds the browser and loads the initial report. window is
// the moving average length used for the volume sparkline.
func NewModel(ctx context.Context, acc *records.Access, items []model.ExerciseConfig, cfg model.HistoryConfig, window int, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		ctx:      ctx,
		acc:      acc,
		items:    items,
		now:      now,
		cfg:      cfg,
		window:   max(1, window),
		overview: viewport.New(0, 0),
		days:     viewport.New(0, 0),
		totals:   newTotalsTable(),
		form:     newRangeForm(),
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.form.active {
			return m, m.updateForm(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "tab", "right", "l":
		m.switchPane(1)
		return tea.ClearScreen
	case "shift+tab", "left", "h":
		m.switchPane(-1)
		return tea.ClearScreen
	case "=", "+":
		m.window = stepWindow(m.window, 1)
		m.redraw()
		return nil
	case "-":
		m.window = stepWindow(m.window, -1)
		m.redraw()
		return nil
	case "/":
		return m.form.open(m.cfg, m.window)
	case "g", "home":
		m.scrollEdge(true)
		return nil
	case "G", "end":
		m.scrollEdge(false)
		return nil
	}
	var cmd tea.Cmd
	switch m.pane {
	case paneExercises:
		m.totals, cmd = m.totals.Update(msg)
	case paneDays:
		m.days, cmd = m.days.Update(msg)
	default:
		m.overview, cmd = m.overview.Update(msg)
	}
	return cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	done, cmd := m.form.update(msg)
	if !done {
		return cmd
	}
	cfg, window, err := m.form.submit()
	if err != nil {
		m.form.err = err.Error()
		return nil
	}
	m.form.close()
	m.cfg, m.window = cfg, window
	m.reload()
	m.resize()
	return nil
}

func (m *Model) switchPane(delta int) {
	m.pane = (m.pane + pane(delta) + paneCount) % paneCount
	if m.pane == paneExercises {
		m.totals.Focus()
	} else {
		m.totals.Blur()
	}
}

func (m *Model) scrollEdge(top bool) {
	switch m.pane {
	case paneExercises:
		if top {
			m.totals.GotoTop()
		} else {
			m.totals.GotoBottom()
		}
	case paneDays:
		if top {
			m.days.GotoTop()
		} else {
			m.days.GotoBottom()
		}
	default:
		if top {
			m.overview.GotoTop()
		} else {
			m.overview.GotoBottom()
		}
	}
}

// reload rebuilds the report for the current range.
func (m *Model) reload() {
	m.report = stats.BuildReport(m.ctx, m.acc, m.items, m.cfg, m.now())
	m.totals.SetRows(totalsRows(m.report.Totals))
	m.totals.GotoTop()
	m.redraw()
}

func (m *Model) redraw() {
	width := m.contentWidth()
	m.overview.SetContent(renderOverview(m.report, m.window, width))
	m.days.SetContent(renderDays(m.report, m.items, width))
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	r := m.regions()
	m.overview.Width, m.overview.Height = m.width, r.body
	m.days.Width, m.days.Height = m.width, r.body
	m.totals.SetWidth(m.width)
	m.totals.SetHeight(max(1, r.body-1))
	m.form.setWidth(m.width)
	m.redraw()
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	r := m.regions()
	return strings.Join([]string{
		frame(m.renderHeader(), m.width, r.header),
		frame(m.renderBody(), m.width, r.body),
		frame(m.renderFooter(), m.width, r.footer),
	}, "\n")
}

func (m *Model) renderBody() string {
	if m.form.active {
		return m.form.view()
	}
	switch m.pane {
	case paneExercises:
		if len(m.report.Totals) == 0 {
			return "Nothing logged in range."
		}
		return tableStyle.Render(m.totals.View())
	case paneDays:
		return m.days.View()
	default:
		return m.overview.View()
	}
}
