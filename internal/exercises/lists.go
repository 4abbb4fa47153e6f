package exercises

import (
	"sort"

	"github.com/verte-zerg/setlog/internal/model"
)

// BuildLists converts exercise configuration into per-category display
// lists. Disabled items are dropped and each category is stably sorted by
// order. maxCheckboxes caps rendered checkbox slots; values <= 0 use the
// default cap.
func BuildLists(items []model.ExerciseConfig, maxCheckboxes int) model.ExerciseLists {
	if maxCheckboxes <= 0 {
		maxCheckboxes = DefaultMaxCheckboxes
	}
	type entry struct {
		item  model.DisplayItem
		order int
	}
	buckets := map[model.Category][]entry{}
	for _, cfg := range items {
		if !cfg.Enabled {
			continue
		}
		display := displayItem(cfg, maxCheckboxes)
		buckets[display.Category] = append(buckets[display.Category], entry{item: display, order: cfg.Order})
	}

	sorted := func(c model.Category) []model.DisplayItem {
		entries := buckets[c]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].order < entries[j].order
		})
		out := make([]model.DisplayItem, len(entries))
		for i, e := range entries {
			out[i] = e.item
		}
		return out
	}
	return model.ExerciseLists{
		Upper: sorted(model.CategoryUpper),
		Lower: sorted(model.CategoryLower),
		Other: sorted(model.CategoryOther),
	}
}

func displayItem(cfg model.ExerciseConfig, maxCheckboxes int) model.DisplayItem {
	item := model.DisplayItem{
		ID:        cfg.ID,
		Name:      cfg.Name,
		Category:  cfg.Category,
		InputMode: cfg.InputMode,
	}
	if _, ok := model.ParseCategory(string(item.Category)); !ok {
		item.Category = model.CategoryOther
	}
	if _, ok := model.ParseInputMode(string(item.InputMode)); !ok {
		item.InputMode = model.InputCheck
	}
	switch item.InputMode {
	case model.InputCheck:
		item.Sets = ResolveCheckCount(cfg)
		item.Slots = item.Sets
		if item.Slots > maxCheckboxes {
			item.Slots = maxCheckboxes
		}
	case model.InputCount:
		if cfg.TargetCount != nil {
			target := *cfg.TargetCount
			item.Target = &target
		}
	}
	return item
}

// ResolveCheckCount returns the configured checkbox count, falling back to
// the legacy sets field and then the default, never below one.
func ResolveCheckCount(cfg model.ExerciseConfig) int {
	n := cfg.CheckCount
	if n == 0 {
		n = cfg.LegacySets
	}
	if n == 0 {
		n = DefaultCheckCount
	}
	if n < 1 {
		n = 1
	}
	return n
}
