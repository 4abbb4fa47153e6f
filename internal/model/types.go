// Package model defines shared data structures.
package model

import "time"

// Category is a body-region grouping for exercises.
type Category string

// Known categories, in display order.
const (
	CategoryUpper Category = "upper"
	CategoryLower Category = "lower"
	CategoryOther Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryUpper, CategoryLower, CategoryOther}

// ParseCategory maps a stored or user-entered value to a category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryUpper, CategoryLower, CategoryOther:
		return Category(s), true
	}
	return "", false
}

// Label returns the human-readable section title.
func (c Category) Label() string {
	switch c {
	case CategoryUpper:
		return "Upper body"
	case CategoryLower:
		return "Lower body"
	default:
		return "Other"
	}
}

// InputMode selects how sets are logged for an exercise.
type InputMode string

// Input modes.
const (
	InputCheck InputMode = "check"
	InputCount InputMode = "count"
)

// ParseInputMode maps a stored or user-entered value to an input mode.
func ParseInputMode(s string) (InputMode, bool) {
	switch InputMode(s) {
	case InputCheck, InputCount:
		return InputMode(s), true
	}
	return "", false
}

// ExerciseConfig is one user-defined exercise.
// CheckCount is active in check mode, TargetCount in count mode.
type ExerciseConfig struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Category    Category  `json:"category" yaml:"category"`
	InputMode   InputMode `json:"inputMode" yaml:"inputMode"`
	CheckCount  int       `json:"checkCount,omitempty" yaml:"checkCount,omitempty"`
	TargetCount *int      `json:"targetCount,omitempty" yaml:"targetCount,omitempty"`
	Enabled     bool      `json:"enabled" yaml:"enabled"`
	Order       int       `json:"order" yaml:"order"`

	// LegacySets is the pre-settings name of CheckCount.
	LegacySets int `json:"sets,omitempty" yaml:"-"`
}

// Settings is the persisted exercise configuration.
type Settings struct {
	Items []ExerciseConfig `json:"items" yaml:"items"`
}

// DisplayItem is a render-ready projection of an enabled exercise.
type DisplayItem struct {
	ID        string
	Name      string
	Category  Category
	InputMode InputMode
	// Sets is the resolved checkbox count; Slots is Sets capped for display.
	Sets   int
	Slots  int
	Target *int
}

// ExerciseLists holds display items partitioned by category.
type ExerciseLists struct {
	Upper []DisplayItem
	Lower []DisplayItem
	Other []DisplayItem
}

// For returns the items for a category.
func (l ExerciseLists) For(c Category) []DisplayItem {
	switch c {
	case CategoryUpper:
		return l.Upper
	case CategoryLower:
		return l.Lower
	default:
		return l.Other
	}
}

// DisplayOptions controls how exercise lists and records are shown.
type DisplayOptions struct {
	MaxCheckboxes    int
	MaxCount         int
	StatusDuration   time.Duration
	EmptyPlaceholder map[Category]bool
}

// ShowPlaceholder reports whether an empty category renders a message.
func (o DisplayOptions) ShowPlaceholder(c Category) bool {
	return o.EmptyPlaceholder[c]
}

// Notes holds one free-text note per category.
type Notes struct {
	Upper string `json:"upper"`
	Lower string `json:"lower"`
	Other string `json:"other"`
}

// Get returns the note for a category.
func (n Notes) Get(c Category) string {
	switch c {
	case CategoryUpper:
		return n.Upper
	case CategoryLower:
		return n.Lower
	default:
		return n.Other
	}
}

// Set replaces the note for a category.
func (n *Notes) Set(c Category, text string) {
	switch c {
	case CategoryUpper:
		n.Upper = text
	case CategoryLower:
		n.Lower = text
	default:
		n.Other = text
	}
}

// DayRecord is one calendar day's logged data.
type DayRecord struct {
	Date   string            `json:"date"`
	Checks map[string][]bool `json:"checks"`
	Counts map[string][]int  `json:"counts"`
	Notes  Notes             `json:"notes"`
}

// HistoryConfig defines filters for history reports.
type HistoryConfig struct {
	Since *time.Time
	Until *time.Time
	Days  int
}

// ExerciseTotals aggregates one exercise across day records.
type ExerciseTotals struct {
	ExerciseID string
	Name       string
	Category   Category
	Days       int
	Sets       int
	Reps       int
	BestReps   int
	BestDate   string
}

// DayVolume summarizes one day across all exercises.
type DayVolume struct {
	Date string
	Sets int
	Reps int
}
