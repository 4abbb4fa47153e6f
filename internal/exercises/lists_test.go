package exercises

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/verte-zerg/setlog/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func intPtr(v int) *int {
	return &v
}

func TestBuildListsSingleCheckItem(t *testing.T) {
	lists := BuildLists([]model.ExerciseConfig{
		{ID: "a", Category: model.CategoryUpper, InputMode: model.InputCheck, CheckCount: 3, Enabled: true},
	}, 0)
	want := model.ExerciseLists{
		Upper: []model.DisplayItem{{ID: "a", Category: model.CategoryUpper, InputMode: model.InputCheck, Sets: 3, Slots: 3}},
		Lower: []model.DisplayItem{},
		Other: []model.DisplayItem{},
	}
	if diff := cmp.Diff(want, lists); diff != "" {
		t.Fatalf("unexpected lists (-want +got):\n%s", diff)
	}
}

func TestBuildListsCapsDisplayedCheckboxes(t *testing.T) {
	lists := BuildLists([]model.ExerciseConfig{
		{ID: "a", Category: model.CategoryUpper, InputMode: model.InputCheck, CheckCount: 7, Enabled: true},
	}, 0)
	if len(lists.Upper) != 1 {
		t.Fatalf("expected 1 upper item, got %d", len(lists.Upper))
	}
	item := lists.Upper[0]
	if item.Slots != 5 {
		t.Fatalf("expected 5 slots, got %d", item.Slots)
	}
	if item.Sets != 7 {
		t.Fatalf("expected uncapped sets to stay 7, got %d", item.Sets)
	}
}

func TestBuildListsDropsDisabled(t *testing.T) {
	items := []model.ExerciseConfig{
		{ID: "on", Category: model.CategoryLower, Enabled: true},
		{ID: "off", Category: model.CategoryLower, Enabled: false},
		{ID: "off2", Category: model.CategoryOther, Enabled: false},
	}
	lists := BuildLists(items, 0)
	for _, c := range model.Categories {
		for _, item := range lists.For(c) {
			if item.ID == "off" || item.ID == "off2" {
				t.Fatalf("disabled item %q present in %s", item.ID, c)
			}
		}
	}
	if len(lists.Lower) != 1 {
		t.Fatalf("expected 1 lower item, got %d", len(lists.Lower))
	}
}

func TestBuildListsStableOrder(t *testing.T) {
	items := []model.ExerciseConfig{
		{ID: "c", Category: model.CategoryUpper, Enabled: true, Order: 2},
		{ID: "x", Category: model.CategoryUpper, Enabled: true},
		{ID: "a", Category: model.CategoryUpper, Enabled: true, Order: 1},
		{ID: "y", Category: model.CategoryUpper, Enabled: true},
		{ID: "b", Category: model.CategoryUpper, Enabled: true, Order: 1},
		{ID: "neg", Category: model.CategoryUpper, Enabled: true, Order: -1},
	}
	lists := BuildLists(items, 0)
	var got []string
	for _, item := range lists.Upper {
		got = append(got, item.ID)
	}
	want := []string{"neg", "x", "y", "a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestBuildListsResolvesDefaults(t *testing.T) {
	items := []model.ExerciseConfig{
		{ID: "legacy", Category: model.CategoryLower, LegacySets: 4, Enabled: true},
		{ID: "none", Category: model.CategoryLower, Enabled: true, Order: 1},
		{ID: "neg", Category: model.CategoryLower, CheckCount: -2, Enabled: true, Order: 2},
		{ID: "count", Category: "bogus", InputMode: model.InputCount, TargetCount: intPtr(12), CheckCount: 9, Enabled: true},
	}
	lists := BuildLists(items, 0)
	sets := map[string]int{}
	for _, item := range lists.Lower {
		if item.InputMode != model.InputCheck {
			t.Fatalf("expected check mode default for %q", item.ID)
		}
		sets[item.ID] = item.Sets
	}
	if diff := cmp.Diff(map[string]int{"legacy": 4, "none": 3, "neg": 1}, sets); diff != "" {
		t.Fatalf("unexpected sets (-want +got):\n%s", diff)
	}
	if len(lists.Other) != 1 {
		t.Fatalf("expected unknown category to land in other")
	}
	count := lists.Other[0]
	if count.Target == nil || *count.Target != 12 || count.Slots != 0 || count.Sets != 0 {
		t.Fatalf("unexpected count item: %+v", count)
	}
}

func TestBuildListsCustomCap(t *testing.T) {
	lists := BuildLists([]model.ExerciseConfig{
		{ID: "a", Category: model.CategoryOther, CheckCount: 4, Enabled: true},
	}, 2)
	if lists.Other[0].Slots != 2 {
		t.Fatalf("expected 2 slots, got %d", lists.Other[0].Slots)
	}
}
