// Package exercises resolves exercise configuration and builds display lists.
package exercises

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/setlog/internal/model"
)

// Source identifies where a resolved configuration came from.
type Source int

// Configuration sources, in precedence order.
const (
	SourceSettings Source = iota
	SourceLegacy
	SourceDefaults
)

func (s Source) String() string {
	switch s {
	case SourceSettings:
		return "settings"
	case SourceLegacy:
		return "legacy"
	default:
		return "defaults"
	}
}

// Resolution is a fully defaulted exercise configuration.
type Resolution struct {
	Items  []model.ExerciseConfig
	Source Source
}

// NewID generates identifiers for exercises that lack one.
type NewID func() string

// UUID is the default NewID.
func UUID() string {
	return uuid.NewString()
}

type rawExercise struct {
	ID          string          `json:"id"`
	Name        json.RawMessage `json:"name"`
	Category    string          `json:"category"`
	InputMode   string          `json:"inputMode"`
	CheckCount  json.RawMessage `json:"checkCount"`
	Sets        json.RawMessage `json:"sets"`
	TargetCount json.RawMessage `json:"targetCount"`
	Enabled     *bool           `json:"enabled"`
	Order       json.RawMessage `json:"order"`
}

type rawSettings struct {
	Items []json.RawMessage `json:"items"`
}

// Resolve turns raw persisted configuration into a defaulted item list.
// settingsRaw is the settings-v1 value and legacyRaw the old exercises
// value; either may be nil. Non-empty settings win over legacy data, and
// when neither yields items the built-in catalog is used.
func Resolve(settingsRaw, legacyRaw []byte, newID NewID) Resolution {
	if newID == nil {
		newID = UUID
	}
	if len(settingsRaw) > 0 {
		var s rawSettings
		if err := json.Unmarshal(settingsRaw, &s); err == nil {
			if items := decodeItems(s.Items, newID, false); len(items) > 0 {
				return Resolution{Items: items, Source: SourceSettings}
			}
		}
	}
	if len(legacyRaw) > 0 {
		var list []json.RawMessage
		if err := json.Unmarshal(legacyRaw, &list); err == nil {
			if items := decodeItems(list, newID, true); len(items) > 0 {
				return Resolution{Items: items, Source: SourceLegacy}
			}
		}
	}
	return Resolution{Items: DefaultCatalog(), Source: SourceDefaults}
}

func decodeItems(list []json.RawMessage, newID NewID, legacy bool) []model.ExerciseConfig {
	items := make([]model.ExerciseConfig, 0, len(list))
	seen := map[string]struct{}{}
	for i, msg := range list {
		var raw rawExercise
		if err := json.Unmarshal(msg, &raw); err != nil {
			continue
		}
		item := resolveItem(raw, newID)
		if _, dup := seen[item.ID]; dup {
			item.ID = newID()
		}
		seen[item.ID] = struct{}{}
		if legacy && !hasNumber(raw.Order) {
			item.Order = i
		}
		items = append(items, item)
	}
	return items
}

func resolveItem(raw rawExercise, newID NewID) model.ExerciseConfig {
	item := model.ExerciseConfig{
		ID:      strings.TrimSpace(raw.ID),
		Name:    stringField(raw.Name),
		Enabled: true,
	}
	if item.ID == "" {
		item.ID = newID()
	}
	if c, ok := model.ParseCategory(strings.ToLower(strings.TrimSpace(raw.Category))); ok {
		item.Category = c
	} else {
		item.Category = model.CategoryOther
	}
	if m, ok := model.ParseInputMode(strings.ToLower(strings.TrimSpace(raw.InputMode))); ok {
		item.InputMode = m
	} else {
		item.InputMode = model.InputCheck
	}
	if raw.Enabled != nil {
		item.Enabled = *raw.Enabled
	}
	if f, ok := numberField(raw.CheckCount); ok {
		item.CheckCount = floorInt(f)
	}
	if f, ok := numberField(raw.Sets); ok {
		item.LegacySets = floorInt(f)
	}
	if f, ok := numberField(raw.TargetCount); ok {
		target := floorInt(f)
		if target < 0 {
			target = 0
		}
		item.TargetCount = &target
	}
	if f, ok := numberField(raw.Order); ok {
		item.Order = floorInt(f)
	}
	return item
}

func hasNumber(msg json.RawMessage) bool {
	_, ok := numberField(msg)
	return ok
}

// numberField reads a finite number, accepting numeric strings.
func numberField(msg json.RawMessage) (float64, bool) {
	if len(msg) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	} else if string(msg) == "null" {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringField(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	if f, ok := numberField(msg); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func floorInt(f float64) int {
	f = math.Floor(f)
	if f >= float64(math.MaxInt) {
		return math.MaxInt
	}
	if f <= float64(math.MinInt) {
		return math.MinInt
	}
	return int(f)
}
