// Package tui provides the Bubble Tea day logging interface.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/verte-zerg/setlog/internal/dayrecord"
	"github.com/verte-zerg/setlog/internal/exercises"
	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
)

const maxNameWidth = 24

type rowKind int

const (
	rowExercise rowKind = iota
	rowNote
)

type row struct {
	kind     rowKind
	category model.Category
	item     model.DisplayItem
}

type statusClearMsg struct {
	seq int
}

// Options configures a day logging model.
type Options struct {
	Display model.DisplayOptions
	Date    time.Time
	Now     func() time.Time
	Logger  *zap.Logger
}

// Model implements the Bubble Tea day logging UI.
type Model struct {
	ctx    context.Context
	acc    *records.Access
	logger *zap.Logger
	opts   model.DisplayOptions
	now    func() time.Time

	lists  model.ExerciseLists
	rows   []row
	date   time.Time
	record model.DayRecord
	// unsaved holds records whose last save failed, by date key. They
	// stay authoritative for the session.
	unsaved map[string]model.DayRecord

	focus int
	col   int

	editing bool
	note    textinput.Model

	status    string
	statusSeq int

	width  int
	height int
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E"))
)

// NewModel constructs a day logging model for the enabled exercises in items.
func NewModel(ctx context.Context, acc *records.Access, items []model.ExerciseConfig, opt Options) *Model {
	m := &Model{
		ctx:    ctx,
		acc:    acc,
		logger: opt.Logger,
		opts:   opt.Display,
		now:    opt.Now,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	date := opt.Date
	if date.IsZero() {
		date = m.now()
	}
	m.lists = exercises.BuildLists(items, m.opts.MaxCheckboxes)
	m.rows = buildRows(m.lists)
	m.note = textinput.New()
	m.note.Prompt = "Note: "
	m.note.CharLimit = 0
	m.openDay(date)
	return m
}

func buildRows(lists model.ExerciseLists) []row {
	var rows []row
	for _, c := range model.Categories {
		for _, item := range lists.For(c) {
			rows = append(rows, row{kind: rowExercise, category: c, item: item})
		}
		rows = append(rows, row{kind: rowNote, category: c})
	}
	return rows
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.note.Width = max(10, m.width-lipgloss.Width(m.note.Prompt)-4)
		return m, nil
	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateNote(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.moveFocus(-1)
	case "down", "j":
		m.moveFocus(1)
	case "left", "h":
		m.col = max(0, m.col-1)
	case "right", "l":
		m.col = min(m.cellCount(m.current())-1, m.col+1)
	case "[":
		m.openDay(m.date.AddDate(0, 0, -1))
	case "]":
		m.openDay(m.date.AddDate(0, 0, 1))
	case "t":
		m.openDay(m.now())
	case "n":
		return m.startNote()
	case "enter":
		if r := m.current(); r != nil && r.kind == rowNote {
			return m.startNote()
		}
		return m, m.activate()
	case " ":
		return m, m.activate()
	case "+", "=":
		return m, m.adjust(1)
	case "-":
		return m, m.adjust(-1)
	case "backspace":
		return m, m.shiftDigit(-1)
	case "x", "delete":
		return m, m.removeSet()
	default:
		if d, err := strconv.Atoi(msg.String()); err == nil && d >= 0 && d <= 9 {
			return m, m.shiftDigit(d)
		}
	}
	return m, nil
}

func (m *Model) current() *row {
	if m.focus < 0 || m.focus >= len(m.rows) {
		return nil
	}
	return &m.rows[m.focus]
}

func (m *Model) moveFocus(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.focus = max(0, min(len(m.rows)-1, m.focus+delta))
	m.clampCol()
}

func (m *Model) clampCol() {
	m.col = max(0, min(m.col, m.cellCount(m.current())-1))
}

// cellCount returns the number of focusable cells in a row. Count rows end
// with an empty cell that appends a set.
func (m *Model) cellCount(r *row) int {
	if r == nil || r.kind == rowNote {
		return 1
	}
	if r.item.InputMode == model.InputCount {
		return len(m.record.Counts[r.item.ID]) + 1
	}
	return max(1, r.item.Slots)
}

func (m *Model) openDay(day time.Time) {
	m.date = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	m.record = m.load()
	m.editing = false
	m.note.Blur()
	m.clampCol()
}

func (m *Model) dateKey() string {
	return m.date.Format(records.DateLayout)
}

// load returns the in-memory copy of an unsaved day, or the stored one.
func (m *Model) load() model.DayRecord {
	if rec, ok := m.unsaved[m.dateKey()]; ok {
		return dayrecord.Clone(rec)
	}
	return m.acc.OpenDay(m.ctx, m.dateKey())
}

// mutate re-reads the day, applies fn and saves it when fn reports a
// change. A failed save keeps the record in memory without telling the
// user; the storage layer has already logged it.
func (m *Model) mutate(fn func(rec *model.DayRecord) bool) tea.Cmd {
	rec := m.load()
	changed := fn(&rec)
	m.record = rec
	m.clampCol()
	if !changed {
		return nil
	}
	key := m.dateKey()
	if !m.acc.SaveDayRecord(m.ctx, key, rec) {
		if m.unsaved == nil {
			m.unsaved = map[string]model.DayRecord{}
		}
		m.unsaved[key] = dayrecord.Clone(rec)
		m.logger.Debug("day record kept in memory", zap.String("date", key))
		return nil
	}
	delete(m.unsaved, key)
	return m.setStatus("saved")
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	if m.opts.StatusDuration <= 0 {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.opts.StatusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m *Model) activate() tea.Cmd {
	r := m.current()
	if r == nil || r.kind != rowExercise {
		return nil
	}
	item, set := r.item, m.col
	if item.InputMode == model.InputCheck {
		return m.mutate(func(rec *model.DayRecord) bool {
			dayrecord.ToggleCheck(rec, item.ID, set, item.Slots)
			return true
		})
	}
	value := 0
	if item.Target != nil {
		value = *item.Target
	}
	return m.mutate(func(rec *model.DayRecord) bool {
		if set < len(rec.Counts[item.ID]) {
			return false
		}
		dayrecord.AppendCount(rec, item.ID, value, m.opts.MaxCount)
		return true
	})
}

func (m *Model) adjust(delta int) tea.Cmd {
	r := m.current()
	if r == nil || r.kind != rowExercise || r.item.InputMode != model.InputCount {
		return nil
	}
	id, set := r.item.ID, m.col
	return m.mutate(func(rec *model.DayRecord) bool {
		if delta < 0 && set >= len(rec.Counts[id]) {
			return false
		}
		return dayrecord.AdjustCount(rec, id, set, delta, m.opts.MaxCount)
	})
}

// shiftDigit appends digit d to the focused count, or drops its last digit
// when d is negative. On the append cell a digit starts a new set.
func (m *Model) shiftDigit(d int) tea.Cmd {
	r := m.current()
	if r == nil || r.kind != rowExercise || r.item.InputMode != model.InputCount {
		return nil
	}
	id, set := r.item.ID, m.col
	return m.mutate(func(rec *model.DayRecord) bool {
		counts := rec.Counts[id]
		if set >= len(counts) {
			if d < 0 {
				return false
			}
			dayrecord.AppendCount(rec, id, d, m.opts.MaxCount)
			return true
		}
		next := counts[set] / 10
		if d >= 0 {
			next = counts[set]*10 + d
		}
		return dayrecord.AdjustCount(rec, id, set, next-counts[set], m.opts.MaxCount)
	})
}

func (m *Model) removeSet() tea.Cmd {
	r := m.current()
	if r == nil || r.kind != rowExercise || r.item.InputMode != model.InputCount {
		return nil
	}
	id, set := r.item.ID, m.col
	return m.mutate(func(rec *model.DayRecord) bool {
		return dayrecord.RemoveCount(rec, id, set)
	})
}

func (m *Model) startNote() (tea.Model, tea.Cmd) {
	r := m.current()
	if r == nil {
		return m, nil
	}
	m.editing = true
	m.note.SetValue(m.record.Notes.Get(r.category))
	m.note.CursorEnd()
	return m, m.note.Focus()
}

func (m *Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.note.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.note.Blur()
		category := m.current().category
		text := m.note.Value()
		return m, m.mutate(func(rec *model.DayRecord) bool {
			if rec.Notes.Get(category) == text {
				return false
			}
			dayrecord.SetNote(rec, category, text)
			return true
		})
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	lines, focusLine := m.renderBody()
	header := m.renderHeader()
	footer := m.renderFooter()
	if m.height <= 0 {
		return strings.Join(append(append([]string{header, ""}, lines...), "", footer), "\n")
	}
	bodyHeight := max(1, m.height-3)
	lines = clipLines(lines, focusLine, bodyHeight)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Left, lipgloss.Top, strings.Join(lines, "\n"))
	return header + "\n\n" + body + "\n" + footer
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("setlog  %s", m.date.Format("Mon 2006-01-02"))
	today := m.now()
	if m.date.Year() == today.Year() && m.date.YearDay() == today.YearDay() {
		title += " (today)"
	}
	return titleStyle.Render(title)
}

func (m *Model) renderBody() ([]string, int) {
	nameWidth := m.nameWidth()
	noteWidth := m.width - 8
	var lines []string
	focusLine := 0
	idx := 0
	for _, c := range model.Categories {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sectionStyle.Render(c.Label()))
		if len(m.lists.For(c)) == 0 && m.opts.ShowPlaceholder(c) {
			lines = append(lines, pendingStyle.Render("  No exercises"))
		}
		for ; idx < len(m.rows) && m.rows[idx].category == c; idx++ {
			r := &m.rows[idx]
			focused := idx == m.focus
			if focused {
				focusLine = len(lines)
			}
			if r.kind == rowNote {
				lines = append(lines, m.renderNote(r, focused, noteWidth)...)
				continue
			}
			lines = append(lines, m.renderExercise(r, focused, nameWidth))
		}
	}
	return lines, focusLine
}

func (m *Model) nameWidth() int {
	w := 0
	for _, r := range m.rows {
		if r.kind == rowExercise {
			w = max(w, runewidth.StringWidth(r.item.Name))
		}
	}
	return min(w, maxNameWidth)
}

func (m *Model) renderExercise(r *row, focused bool, nameWidth int) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	cells := m.exerciseCells(r)
	for i, cell := range cells {
		style := pendingStyle
		if cell.done {
			style = doneStyle
		}
		if focused && i == m.col {
			style = focusStyle
		}
		cells[i].text = style.Render(cell.text)
	}
	parts := make([]string, 0, len(cells)+2)
	parts = append(parts, marker+fitName(r.item.Name, nameWidth))
	for _, cell := range cells {
		parts = append(parts, cell.text)
	}
	if hint := m.exerciseHint(r); hint != "" {
		parts = append(parts, footerStyle.Render(hint))
	}
	return strings.Join(parts, " ")
}

type cell struct {
	text string
	done bool
}

func (m *Model) exerciseCells(r *row) []cell {
	if r.item.InputMode == model.InputCount {
		counts := m.record.Counts[r.item.ID]
		cells := make([]cell, 0, len(counts)+1)
		for _, v := range counts {
			cells = append(cells, cell{text: fmt.Sprintf("[%d]", v), done: true})
		}
		return append(cells, cell{text: "[+]"})
	}
	marks := m.record.Checks[r.item.ID]
	cells := make([]cell, 0, r.item.Slots)
	for i := 0; i < r.item.Slots; i++ {
		if i < len(marks) && marks[i] {
			cells = append(cells, cell{text: "[x]", done: true})
			continue
		}
		cells = append(cells, cell{text: "[ ]"})
	}
	return cells
}

func (m *Model) exerciseHint(r *row) string {
	if r.item.InputMode == model.InputCount {
		if r.item.Target != nil {
			return fmt.Sprintf("target %d", *r.item.Target)
		}
		return ""
	}
	if r.item.Sets > r.item.Slots {
		return fmt.Sprintf("%d/%d", dayrecord.CheckedCount(m.record, r.item.ID), r.item.Sets)
	}
	return ""
}

func (m *Model) renderNote(r *row, focused bool, width int) []string {
	marker := "  "
	if focused {
		marker = "> "
	}
	if focused && m.editing {
		return []string{marker + m.note.View()}
	}
	text := m.record.Notes.Get(r.category)
	if text == "" {
		return []string{marker + pendingStyle.Render("Note: -")}
	}
	wrapped := wrapText(text, width)
	out := make([]string, 0, len(wrapped))
	for i, line := range wrapped {
		prefix := "        "
		if i == 0 {
			prefix = marker + "Note: "
		}
		out = append(out, prefix+line)
	}
	return out
}

func (m *Model) renderFooter() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	if m.editing {
		return footerStyle.Render("enter: save  esc: cancel")
	}
	return footerStyle.Render("Move: arrows/hjkl  Toggle: space  Count: +/-/0-9/x  Note: n  Day: [/]/t  Quit: q")
}
