package dayrecord

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/setlog/internal/model"
)

func TestToggleCheckPadsToSlots(t *testing.T) {
	rec := Empty("2024-03-01")
	if !ToggleCheck(&rec, "a", 1, 3) {
		t.Fatalf("expected set to be checked")
	}
	if diff := cmp.Diff([]bool{false, true, false}, rec.Checks["a"]); diff != "" {
		t.Fatalf("unexpected marks (-want +got):\n%s", diff)
	}
	if ToggleCheck(&rec, "a", 1, 3) {
		t.Fatalf("expected set to be unchecked")
	}
	if CheckedCount(rec, "a") != 0 {
		t.Fatalf("expected no checked sets")
	}
}

func TestToggleCheckKeepsLongerStoredSequence(t *testing.T) {
	rec := Empty("2024-03-01")
	rec.Checks["a"] = []bool{true, true, true, true, true, true, true}
	ToggleCheck(&rec, "a", 0, 5)
	if len(rec.Checks["a"]) != 7 {
		t.Fatalf("expected stored marks to stay uncapped, got %d", len(rec.Checks["a"]))
	}
	if CheckedCount(rec, "a") != 6 {
		t.Fatalf("expected 6 checked sets, got %d", CheckedCount(rec, "a"))
	}
}

func TestAdjustCountAppendsAndClamps(t *testing.T) {
	rec := Empty("2024-03-01")
	if !AdjustCount(&rec, "a", 0, 5, 10) {
		t.Fatalf("expected append at index 0")
	}
	if AdjustCount(&rec, "a", 3, 1, 10) {
		t.Fatalf("expected out of range index to be rejected")
	}
	AdjustCount(&rec, "a", 0, 20, 10)
	AdjustCount(&rec, "a", 1, -3, 10)
	if diff := cmp.Diff([]int{10, 0}, rec.Counts["a"]); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

func TestAdjustCountKeepsValuesAboveLimit(t *testing.T) {
	rec := Empty("2024-03-01")
	rec.Counts["a"] = []int{500}
	AdjustCount(&rec, "a", 0, 1, 100)
	if rec.Counts["a"][0] != 500 {
		t.Fatalf("increase must not lower an over-limit count, got %d", rec.Counts["a"][0])
	}
	AdjustCount(&rec, "a", 0, -1, 100)
	if rec.Counts["a"][0] != 499 {
		t.Fatalf("expected decrease to 499, got %d", rec.Counts["a"][0])
	}
}

func TestRemoveCountDeletesEmptyEntry(t *testing.T) {
	rec := Empty("2024-03-01")
	AppendCount(&rec, "a", 8, 0)
	AppendCount(&rec, "a", 6, 0)
	if !RemoveCount(&rec, "a", 0) {
		t.Fatalf("expected removal")
	}
	if diff := cmp.Diff([]int{6}, rec.Counts["a"]); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
	RemoveCount(&rec, "a", 0)
	if _, ok := rec.Counts["a"]; ok {
		t.Fatalf("expected empty entry to be removed")
	}
	if RemoveCount(&rec, "a", 0) {
		t.Fatalf("expected removal from missing entry to fail")
	}
}

func TestSetNote(t *testing.T) {
	rec := Empty("2024-03-01")
	SetNote(&rec, model.CategoryOther, "stretching")
	if rec.Notes.Other != "stretching" || rec.Notes.Get(model.CategoryOther) != "stretching" {
		t.Fatalf("unexpected notes: %+v", rec.Notes)
	}
}
