// Package dayrecord merges persisted day records with their default shape.
package dayrecord

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/verte-zerg/setlog/internal/model"
)

// CountValue is a persisted per-exercise count entry.
// It is either a LegacyScalarCount or a CountSequence.
type CountValue interface {
	isCountValue()
}

// LegacyScalarCount is the old single-number form meaning one recorded set.
type LegacyScalarCount float64

// CountSequence is the current one-value-per-set form.
type CountSequence []float64

func (LegacyScalarCount) isCountValue() {}
func (CountSequence) isCountValue()     {}

// Persisted is a day record as read from storage, before normalization.
// Nil note pointers mean the field was absent.
type Persisted struct {
	Date   string
	Checks map[string][]bool
	Counts map[string]CountValue
	Notes  PersistedNotes
}

// PersistedNotes holds notes that may be absent.
type PersistedNotes struct {
	Upper *string
	Lower *string
	Other *string
}

type persistedJSON struct {
	Date   string                     `json:"date"`
	Checks map[string]json.RawMessage `json:"checks"`
	Counts map[string]json.RawMessage `json:"counts"`
	Notes  struct {
		Upper *string `json:"upper"`
		Lower *string `json:"lower"`
		Other *string `json:"other"`
	} `json:"notes"`
}

// Decode parses a stored day record. Entries whose shape is not
// recognized are dropped rather than failing the whole record.
func Decode(data []byte) (*Persisted, error) {
	var raw persistedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	p := &Persisted{
		Date:   raw.Date,
		Checks: map[string][]bool{},
		Counts: map[string]CountValue{},
		Notes: PersistedNotes{
			Upper: raw.Notes.Upper,
			Lower: raw.Notes.Lower,
			Other: raw.Notes.Other,
		},
	}
	for id, msg := range raw.Checks {
		var marks []bool
		if err := json.Unmarshal(msg, &marks); err != nil || marks == nil {
			continue
		}
		p.Checks[id] = marks
	}
	for id, msg := range raw.Counts {
		if v, ok := decodeCount(msg); ok {
			p.Counts[id] = v
		}
	}
	return p, nil
}

func decodeCount(msg json.RawMessage) (CountValue, bool) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return nil, false
	}
	switch msg[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(msg, &elems); err != nil {
			return nil, false
		}
		seq := make(CountSequence, len(elems))
		for i, elem := range elems {
			seq[i] = elementValue(elem)
		}
		return seq, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := json.Unmarshal(msg, &f); err != nil {
			return nil, false
		}
		return LegacyScalarCount(f), true
	}
	return nil, false
}

// elementValue reads one sequence element. Numbers and numeric strings
// keep their value; anything else counts as zero.
func elementValue(msg json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed
		}
	}
	return 0
}

// FromRecord converts a normalized record back to its persisted form.
func FromRecord(rec model.DayRecord) *Persisted {
	p := &Persisted{
		Date:   rec.Date,
		Checks: make(map[string][]bool, len(rec.Checks)),
		Counts: make(map[string]CountValue, len(rec.Counts)),
	}
	for id, marks := range rec.Checks {
		p.Checks[id] = append([]bool(nil), marks...)
	}
	for id, counts := range rec.Counts {
		seq := make(CountSequence, len(counts))
		for i, c := range counts {
			seq[i] = float64(c)
		}
		p.Counts[id] = seq
	}
	upper, lower, other := rec.Notes.Upper, rec.Notes.Lower, rec.Notes.Other
	p.Notes = PersistedNotes{Upper: &upper, Lower: &lower, Other: &other}
	return p
}
