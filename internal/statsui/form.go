package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
)

const (
	fieldSince = iota
	fieldUntil
	fieldDays
	fieldWindow
)

// windowSteps are the smoothing lengths cycled with -/=.
var windowSteps = []int{1, 3, 7, 14, 30}

// rangeForm edits the report range in place of the body.
type rangeForm struct {
	active bool
	fields []textinput.Model
	focus  int
	err    string
}

func newRangeForm() rangeForm {
	labels := []string{"Since", "Until", "Last days", "Window"}
	fields := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-10s ", label+":")
		in.Placeholder = "-"
		fields[i] = in
	}
	fields[fieldSince].Placeholder = "YYYY-MM-DD"
	fields[fieldUntil].Placeholder = "YYYY-MM-DD"
	return rangeForm{fields: fields}
}

func (f *rangeForm) open(cfg model.HistoryConfig, window int) tea.Cmd {
	f.active = true
	f.err = ""
	f.fields[fieldSince].SetValue(dateValue(cfg.Since))
	f.fields[fieldUntil].SetValue(dateValue(cfg.Until))
	f.fields[fieldDays].SetValue("")
	if cfg.Days > 0 {
		f.fields[fieldDays].SetValue(strconv.Itoa(cfg.Days))
	}
	f.fields[fieldWindow].SetValue(strconv.Itoa(window))
	return f.focusField(0)
}

func (f *rangeForm) close() {
	f.active = false
	f.err = ""
	for i := range f.fields {
		f.fields[i].Blur()
	}
}

func (f *rangeForm) setWidth(width int) {
	for i := range f.fields {
		f.fields[i].Width = max(10, width-len(f.fields[i].Prompt)-2)
	}
}

// update handles one key. It reports true when the form was submitted.
func (f *rangeForm) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		f.close()
		return false, nil
	case tea.KeyEnter:
		return true, nil
	case tea.KeyTab, tea.KeyDown:
		return false, f.focusField(f.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return false, f.focusField(f.focus - 1)
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return false, cmd
}

func (f *rangeForm) focusField(i int) tea.Cmd {
	n := len(f.fields)
	f.focus = (i%n + n) % n
	var cmd tea.Cmd
	for j := range f.fields {
		if j == f.focus {
			cmd = f.fields[j].Focus()
			continue
		}
		f.fields[j].Blur()
	}
	return cmd
}

// submit validates the fields into a history range and window.
func (f *rangeForm) submit() (model.HistoryConfig, int, error) {
	var cfg model.HistoryConfig
	var err error
	if cfg.Since, err = parseField(f.fields[fieldSince].Value(), "since"); err != nil {
		return cfg, 0, err
	}
	if cfg.Until, err = parseField(f.fields[fieldUntil].Value(), "until"); err != nil {
		return cfg, 0, err
	}
	if cfg.Since != nil && cfg.Until != nil && cfg.Until.Before(*cfg.Since) {
		return cfg, 0, fmt.Errorf("until is before since")
	}
	if v := strings.TrimSpace(f.fields[fieldDays].Value()); v != "" {
		cfg.Days, err = strconv.Atoi(v)
		if err != nil || cfg.Days < 0 {
			return cfg, 0, fmt.Errorf("last days must be a non-negative number")
		}
	}
	window := 1
	if v := strings.TrimSpace(f.fields[fieldWindow].Value()); v != "" {
		window, err = strconv.Atoi(v)
		if err != nil || window < 1 {
			return cfg, 0, fmt.Errorf("window must be at least 1")
		}
	}
	return cfg, window, nil
}

func (f *rangeForm) view() string {
	lines := make([]string, 0, len(f.fields)+3)
	lines = append(lines, accentStyle.Render("Date range"), "")
	for _, in := range f.fields {
		lines = append(lines, in.View())
	}
	if f.err != "" {
		lines = append(lines, "", errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}

func parseField(value, name string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(records.DateLayout, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return &t, nil
}

func dateValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(records.DateLayout)
}

// stepWindow moves to the neighbouring entry of windowSteps. Values
// between steps snap to the next one in the direction of travel.
func stepWindow(current, dir int) int {
	if dir > 0 {
		for _, w := range windowSteps {
			if w > current {
				return w
			}
		}
		return windowSteps[len(windowSteps)-1]
	}
	for i := len(windowSteps) - 1; i >= 0; i-- {
		if windowSteps[i] < current {
			return windowSteps[i]
		}
	}
	return windowSteps[0]
}
