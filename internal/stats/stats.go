// Package stats contains history aggregation and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/setlog/internal/model"
)

const sparkChars = " .:-=+*#%@"

// DayTotals returns sets and reps logged for one exercise on one day.
// Checked boxes count as sets; each count entry is a set whose value adds
// to reps.
func DayTotals(rec model.DayRecord, id string) (sets, reps int) {
	for _, mark := range rec.Checks[id] {
		if mark {
			sets++
		}
	}
	for _, c := range rec.Counts[id] {
		sets++
		reps += c
	}
	return sets, reps
}

// Summarize aggregates per-exercise totals over records. Exercises that
// no longer exist in items are reported under their id.
func Summarize(records []model.DayRecord, items []model.ExerciseConfig) []model.ExerciseTotals {
	byID := map[string]*model.ExerciseTotals{}
	rank := map[string]int{}
	for i, item := range items {
		rank[item.ID] = i
	}
	entry := func(id string) *model.ExerciseTotals {
		if t, ok := byID[id]; ok {
			return t
		}
		t := &model.ExerciseTotals{ExerciseID: id, Name: id, Category: model.CategoryOther}
		if i, ok := rank[id]; ok {
			if items[i].Name != "" {
				t.Name = items[i].Name
			}
			t.Category = items[i].Category
		}
		byID[id] = t
		return t
	}
	for _, rec := range records {
		for _, id := range recordIDs(rec) {
			sets, reps := DayTotals(rec, id)
			if sets == 0 {
				continue
			}
			t := entry(id)
			t.Days++
			t.Sets += sets
			t.Reps += reps
			if reps > t.BestReps {
				t.BestReps = reps
				t.BestDate = rec.Date
			}
		}
	}

	out := make([]model.ExerciseTotals, 0, len(byID))
	for _, t := range byID {
		out = append(out, *t)
	}
	catIndex := map[model.Category]int{}
	for i, c := range model.Categories {
		catIndex[c] = i
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := rank[out[i].ExerciseID]
		rj, jKnown := rank[out[j].ExerciseID]
		if iKnown != jKnown {
			return iKnown
		}
		if catIndex[out[i].Category] != catIndex[out[j].Category] {
			return catIndex[out[i].Category] < catIndex[out[j].Category]
		}
		if iKnown && ri != rj {
			return ri < rj
		}
		return out[i].ExerciseID < out[j].ExerciseID
	})
	return out
}

// DailyVolume returns total sets and reps per record.
func DailyVolume(records []model.DayRecord) []model.DayVolume {
	out := make([]model.DayVolume, 0, len(records))
	for _, rec := range records {
		v := model.DayVolume{Date: rec.Date}
		for _, id := range recordIDs(rec) {
			sets, reps := DayTotals(rec, id)
			v.Sets += sets
			v.Reps += reps
		}
		out = append(out, v)
	}
	return out
}

func recordIDs(rec model.DayRecord) []string {
	seen := map[string]struct{}{}
	ids := make([]string, 0, len(rec.Checks)+len(rec.Counts))
	for id := range rec.Checks {
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for id := range rec.Counts {
		if _, ok := seen[id]; ok {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints overall counts for the reported days.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Days) == 0 {
		_, err := fmt.Fprintln(w, "No logged days found.")
		return err
	}
	active, sets, reps := 0, 0, 0
	for _, v := range report.Volume {
		if v.Sets > 0 {
			active++
		}
		sets += v.Sets
		reps += v.Reps
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Days: %d (%s to %s)", len(report.Days), report.Days[0].Date, report.Days[len(report.Days)-1].Date),
		fmt.Sprintf("Active days: %d", active),
		fmt.Sprintf("Current streak: %d", report.Streak),
		fmt.Sprintf("Sets: %d", sets),
		fmt.Sprintf("Reps: %d", reps),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTotals prints the per-exercise table.
func RenderTotals(w io.Writer, totals []model.ExerciseTotals) error {
	if len(totals) == 0 {
		_, err := fmt.Fprintln(w, "No exercise stats found.")
		return err
	}
	headers := []string{"Exercise", "Category", "Days", "Sets", "Reps", "Best", "Best Day"}
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		best, bestDate := "-", "-"
		if t.BestReps > 0 {
			best = fmt.Sprintf("%d", t.BestReps)
			bestDate = t.BestDate
		}
		rows = append(rows, []string{
			t.Name,
			string(t.Category),
			fmt.Sprintf("%d", t.Days),
			fmt.Sprintf("%d", t.Sets),
			fmt.Sprintf("%d", t.Reps),
			best,
			bestDate,
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	if err := WriteTable(w, headers, rows, rightAlign); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderVolume prints sparklines of daily sets and reps, smoothed over window days.
func RenderVolume(w io.Writer, volume []model.DayVolume, window, width int) error {
	if len(volume) == 0 {
		return nil
	}
	if width > 0 && len(volume) > width {
		volume = volume[len(volume)-width:]
	}
	sets := make([]float64, len(volume))
	reps := make([]float64, len(volume))
	for i, v := range volume {
		sets[i] = float64(v.Sets)
		reps[i] = float64(v.Reps)
	}
	lines := []string{
		"Daily Volume",
		"Sets " + Sparkline(MovingAverage(sets, window)),
		"Reps " + Sparkline(MovingAverage(reps, window)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderNeglected lists enabled exercises with nothing logged in range.
func RenderNeglected(w io.Writer, items []model.ExerciseConfig) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Not trained in range"); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "  %s (%s)\n", item.Name, item.Category.Label()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
