package dayrecord

import "github.com/verte-zerg/setlog/internal/model"

// ToggleCheck flips the mark for set index of an exercise and returns the
// new state. The stored sequence is padded to at least slots entries but
// never truncated.
func ToggleCheck(rec *model.DayRecord, id string, set, slots int) bool {
	if set < 0 {
		return false
	}
	if rec.Checks == nil {
		rec.Checks = map[string][]bool{}
	}
	size := slots
	if set+1 > size {
		size = set + 1
	}
	marks := rec.Checks[id]
	for len(marks) < size {
		marks = append(marks, false)
	}
	marks[set] = !marks[set]
	rec.Checks[id] = marks
	return marks[set]
}

// CheckedCount returns how many sets of an exercise are marked.
func CheckedCount(rec model.DayRecord, id string) int {
	n := 0
	for _, mark := range rec.Checks[id] {
		if mark {
			n++
		}
	}
	return n
}

// AdjustCount adds delta to the count at set index, clamped to [0, limit].
// A count already above limit never grows and is not pulled down by an
// increase. A set index equal to the sequence length appends a new set.
// It returns false if set is out of range.
func AdjustCount(rec *model.DayRecord, id string, set, delta, limit int) bool {
	if rec.Counts == nil {
		rec.Counts = map[string][]int{}
	}
	counts := rec.Counts[id]
	if set < 0 || set > len(counts) {
		return false
	}
	if set == len(counts) {
		counts = append(counts, 0)
	}
	next := counts[set] + delta
	if limit > 0 && next > limit {
		next = max(limit, min(next, counts[set]))
	}
	counts[set] = max(0, next)
	rec.Counts[id] = counts
	return true
}

// AppendCount adds a new set with the given value.
func AppendCount(rec *model.DayRecord, id string, value, limit int) {
	if rec.Counts == nil {
		rec.Counts = map[string][]int{}
	}
	rec.Counts[id] = append(rec.Counts[id], clampCount(value, limit))
}

// RemoveCount deletes the set at index. It returns false if set is out of range.
func RemoveCount(rec *model.DayRecord, id string, set int) bool {
	counts := rec.Counts[id]
	if set < 0 || set >= len(counts) {
		return false
	}
	counts = append(counts[:set:set], counts[set+1:]...)
	if len(counts) == 0 {
		delete(rec.Counts, id)
		return true
	}
	rec.Counts[id] = counts
	return true
}

// SetNote replaces the note for a category.
func SetNote(rec *model.DayRecord, c model.Category, text string) {
	rec.Notes.Set(c, text)
}

func clampCount(v, limit int) int {
	if v < 0 {
		return 0
	}
	if limit > 0 && v > limit {
		return limit
	}
	return v
}
