package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/setlog/internal/model"
)

func TestWriteChartIncludesSeries(t *testing.T) {
	report := Report{
		Days: []model.DayRecord{
			{Date: "2026-10-01", Counts: map[string][]int{"pull": {5}}},
			{Date: "2026-10-02", Counts: map[string][]int{"pull": {6, 7}}},
		},
		Totals: []model.ExerciseTotals{{ExerciseID: "pull", Name: "Pull-ups", Sets: 3, Reps: 18}},
	}
	report.Volume = DailyVolume(report.Days)

	var buf bytes.Buffer
	if err := WriteChart(&buf, report, ChartOptions{Title: "Progress", Top: 1}); err != nil {
		t.Fatalf("write chart: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Progress", "Pull-ups", "2026-10-01"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected chart to contain %q", want)
		}
	}
}
