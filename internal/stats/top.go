package stats

import (
	"sort"

	"github.com/verte-zerg/setlog/internal/model"
)

// TopExercises returns the ids of the n exercises with the most sets.
func TopExercises(totals []model.ExerciseTotals, n int) []string {
	if n <= 0 || len(totals) == 0 {
		return nil
	}
	sorted := append([]model.ExerciseTotals(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Sets == sorted[j].Sets {
			return sorted[i].ExerciseID < sorted[j].ExerciseID
		}
		return sorted[i].Sets > sorted[j].Sets
	})
	n = min(n, len(sorted))
	out := make([]string, 0, n)
	for _, t := range sorted[:n] {
		out = append(out, t.ExerciseID)
	}
	return out
}

// Neglected returns enabled exercises with no sets in any of the records,
// in category display order.
func Neglected(days []model.DayRecord, items []model.ExerciseConfig) []model.ExerciseConfig {
	logged := map[string]bool{}
	for _, rec := range days {
		for _, id := range recordIDs(rec) {
			if sets, _ := DayTotals(rec, id); sets > 0 {
				logged[id] = true
			}
		}
	}
	var out []model.ExerciseConfig
	for _, c := range model.Categories {
		var bucket []model.ExerciseConfig
		for _, item := range items {
			if item.Enabled && item.Category == c && !logged[item.ID] {
				bucket = append(bucket, item)
			}
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Order < bucket[j].Order
		})
		out = append(out, bucket...)
	}
	return out
}
