package statsui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/setlog/internal/kv"
	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
)

var today = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	ctx := context.Background()
	acc := records.New(kv.NewMemory(), zap.NewNop())
	items := []model.ExerciseConfig{
		{ID: "push", Name: "Push-ups", Category: model.CategoryUpper, InputMode: model.InputCheck, CheckCount: 3, Enabled: true},
		{ID: "squat", Name: "Squats", Category: model.CategoryLower, InputMode: model.InputCheck, CheckCount: 3, Enabled: true},
	}
	acc.SaveDayRecord(ctx, "2026-10-17", model.DayRecord{
		Checks: map[string][]bool{"push": {true, true}},
		Notes:  model.Notes{Upper: "felt strong"},
	})
	acc.SaveDayRecord(ctx, "2026-09-01", model.DayRecord{
		Checks: map[string][]bool{"squat": {true}},
	})
	m := NewModel(ctx, acc, items, model.HistoryConfig{}, 3, func() time.Time { return today })
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestOverviewShowsCards(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Overview", "Streak", "Daily Volume", "first log .. today"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
}

func TestTabNavigation(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.pane != paneExercises {
		t.Fatalf("expected exercises tab, got %d", m.pane)
	}
	if !strings.Contains(m.View(), "Push-ups") {
		t.Fatalf("expected exercise table")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	out := m.View()
	if !strings.Contains(out, "2026-10-17") || !strings.Contains(out, "felt strong") {
		t.Fatalf("expected day list with notes")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.pane != paneOverview {
		t.Fatalf("expected wrap to overview, got %d", m.pane)
	}
}

func TestFilterNarrowsRange(t *testing.T) {
	m := newTestModel(t)
	if len(m.report.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(m.report.Days))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.form.active {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.form.active {
		t.Fatalf("expected filter applied, got error %q", m.form.err)
	}
	if len(m.report.Days) != 1 || m.report.Days[0].Date != "2026-10-17" {
		t.Fatalf("unexpected days after filter: %+v", m.report.Days)
	}
	if len(m.report.Neglected) != 1 || m.report.Neglected[0].ID != "squat" {
		t.Fatalf("expected squats to be neglected in range")
	}
}

func TestFilterRejectsBadDate(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("oops")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.form.active || m.form.err == "" {
		t.Fatalf("expected filter error")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.form.active {
		t.Fatalf("expected esc to close filter")
	}
}

func TestWindowSteps(t *testing.T) {
	cases := []struct{ in, up, down int }{
		{1, 3, 1},
		{3, 7, 1},
		{5, 7, 3},
		{30, 30, 14},
		{45, 30, 30},
	}
	for _, tc := range cases {
		if got := stepWindow(tc.in, 1); got != tc.up {
			t.Fatalf("stepWindow(%d, up) = %d, want %d", tc.in, got, tc.up)
		}
		if got := stepWindow(tc.in, -1); got != tc.down {
			t.Fatalf("stepWindow(%d, down) = %d, want %d", tc.in, got, tc.down)
		}
	}
}

func TestFilterRejectsReversedRange(t *testing.T) {
	f := newRangeForm()
	f.open(model.HistoryConfig{}, 7)
	f.fields[fieldSince].SetValue("2026-10-10")
	f.fields[fieldUntil].SetValue("2026-10-01")
	if _, _, err := f.submit(); err == nil {
		t.Fatalf("expected error for reversed range")
	}
	f.fields[fieldUntil].SetValue("")
	f.fields[fieldWindow].SetValue("0")
	if _, _, err := f.submit(); err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestClipAndFrame(t *testing.T) {
	if got := clip("Bulgarian split squat", 10); got != "Bulgarian…" {
		t.Fatalf("unexpected clip %q", got)
	}
	out := frame("a\nb\nc", 3, 2)
	if out != "a  \nb  " {
		t.Fatalf("unexpected frame %q", out)
	}
}
