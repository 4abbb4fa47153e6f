package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
)

// Report contains precomputed data for history rendering.
type Report struct {
	From      string
	To        string
	Days      []model.DayRecord
	Totals    []model.ExerciseTotals
	Volume    []model.DayVolume
	Streak    int
	Neglected []model.ExerciseConfig
}

// BuildReport loads day records in the configured range and aggregates them.
func BuildReport(ctx context.Context, acc *records.Access, items []model.ExerciseConfig, cfg model.HistoryConfig, today time.Time) Report {
	from, to := DateRange(cfg, today)
	days := acc.ListDays(ctx, from, to)
	return Report{
		From:      from,
		To:        to,
		Days:      days,
		Totals:    Summarize(days, items),
		Volume:    DailyVolume(days),
		Streak:    Streak(acc.ListDays(ctx, "", today.Format(records.DateLayout)), today),
		Neglected: Neglected(days, items),
	}
}

// DateRange converts history filters to inclusive date bounds. Days wins
// over Since when both are set; empty bounds are open.
func DateRange(cfg model.HistoryConfig, today time.Time) (from, to string) {
	switch {
	case cfg.Days > 0:
		from = today.AddDate(0, 0, -(cfg.Days - 1)).Format(records.DateLayout)
	case cfg.Since != nil:
		from = cfg.Since.Format(records.DateLayout)
	}
	if cfg.Until != nil {
		to = cfg.Until.Format(records.DateLayout)
	}
	return from, to
}

// Streak counts consecutive active days ending today. A streak that ended
// yesterday is still current until today is over.
func Streak(days []model.DayRecord, today time.Time) int {
	active := map[string]bool{}
	for _, v := range DailyVolume(days) {
		if v.Sets > 0 {
			active[v.Date] = true
		}
	}
	day := today
	if !active[day.Format(records.DateLayout)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for active[day.Format(records.DateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
