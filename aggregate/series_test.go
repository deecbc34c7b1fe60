package aggregate

import (
	"reflect"
	"testing"

	"github.com/datastorm-nyc/ace-impact/cohort"
)

func TestCountBuckets(t *testing.T) {
	counts := map[string]int{
		"AB123": 1,
		"CD456": 2,
		"EF789": 5,
		"GH012": 7,
		"IJ345": 25,
	}
	bounds := []int{1, 3, 5, 10}
	labels := []string{"Single", "2-3 Violations", "4-5 Violations", "6-10 Violations", "10+ Violations"}

	got := CountBuckets(counts, bounds, labels)
	want := []Bucket{
		{Label: "Single", Count: 1},
		{Label: "2-3 Violations", Count: 1},
		{Label: "4-5 Violations", Count: 1},
		{Label: "6-10 Violations", Count: 1},
		{Label: "10+ Violations", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountBuckets = %v, want %v", got, want)
	}
}

func TestTopCounts_StableOrder(t *testing.T) {
	counts := map[string]int{"B": 3, "A": 3, "C": 9, "D": 1}
	got := TopCounts(counts, 3)
	want := []Bucket{{Label: "C", Count: 9}, {Label: "A", Count: 3}, {Label: "B", Count: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopCounts = %v, want %v", got, want)
	}
}

func TestTopCounts_ZeroReturnsAll(t *testing.T) {
	counts := map[string]int{"VIOLATION ISSUED": 4, "EXEMPT - EMERGENCY": 1}
	got := TopCounts(counts, 0)
	want := []Bucket{
		{Label: "VIOLATION ISSUED", Count: 4},
		{Label: "EXEMPT - EMERGENCY", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopCounts(counts, 0) = %v, want all %d entries", got, len(want))
	}
}

func TestMonthlyCounts(t *testing.T) {
	recs := []cohort.Tagged{
		tagged("M1", "2024-12-15", cohort.Pre, 0),
		tagged("M1", "2024-12-20", cohort.Pre, 0),
		tagged("M1", "2025-01-10", cohort.Post, 0),
		{Label: cohort.Post}, // no timestamp: skipped
	}
	got := MonthlyCounts(recs)
	want := []MonthCount{
		{Month: "2024-12", Label: cohort.Pre, Count: 2},
		{Month: "2025-01", Label: cohort.Post, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MonthlyCounts = %v, want %v", got, want)
	}
}
