package dayrecord

import (
	"math"

	"github.com/verte-zerg/setlog/internal/model"
)

const maxCount = math.MaxInt

// Empty returns the default shape of a record for date.
func Empty(date string) model.DayRecord {
	return model.DayRecord{
		Date:   date,
		Checks: map[string][]bool{},
		Counts: map[string][]int{},
	}
}

// Merge overlays a persisted record onto defaults. Persisted values win;
// counts are normalized to non-negative integer sequences. The date is
// always taken from defaults since it is the storage key.
func Merge(persisted *Persisted, defaults model.DayRecord) model.DayRecord {
	out := Clone(defaults)
	if persisted == nil {
		return out
	}
	for id, marks := range persisted.Checks {
		out.Checks[id] = append([]bool(nil), marks...)
	}
	for id, v := range persisted.Counts {
		counts, ok := NormalizeCount(v)
		if !ok {
			continue
		}
		out.Counts[id] = counts
	}
	if persisted.Notes.Upper != nil {
		out.Notes.Upper = *persisted.Notes.Upper
	}
	if persisted.Notes.Lower != nil {
		out.Notes.Lower = *persisted.Notes.Lower
	}
	if persisted.Notes.Other != nil {
		out.Notes.Other = *persisted.Notes.Other
	}
	return out
}

// NormalizeCount converts either count representation into a sequence.
// The bool result is false for unrecognized values, which callers drop.
func NormalizeCount(v CountValue) ([]int, bool) {
	switch c := v.(type) {
	case LegacyScalarCount:
		return []int{coerce(float64(c))}, true
	case CountSequence:
		out := make([]int, len(c))
		for i, f := range c {
			out[i] = coerce(f)
		}
		return out, true
	default:
		return nil, false
	}
}

// coerce floors f and clamps it to [0, maxCount].
func coerce(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	f = math.Floor(f)
	if f >= float64(maxCount) {
		return maxCount
	}
	return int(f)
}

// Clone returns a deep copy of rec.
func Clone(rec model.DayRecord) model.DayRecord {
	out := model.DayRecord{
		Date:   rec.Date,
		Checks: make(map[string][]bool, len(rec.Checks)),
		Counts: make(map[string][]int, len(rec.Counts)),
		Notes:  rec.Notes,
	}
	for id, marks := range rec.Checks {
		out.Checks[id] = append([]bool(nil), marks...)
	}
	for id, counts := range rec.Counts {
		out.Counts[id] = append([]int(nil), counts...)
	}
	return out
}
