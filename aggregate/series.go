package aggregate

import (
	"sort"

	"github.com/datastorm-nyc/ace-impact/cohort"
)

// Bucket is one band of a count distribution, e.g. vehicles with 2-3
// violations.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountBuckets bands per-key event counts into labeled buckets. bounds are
// inclusive upper limits; labels must have len(bounds)+1 entries, the last
// covering everything above the final bound.
func CountBuckets(counts map[string]int, bounds []int, labels []string) []Bucket {
	buckets := make([]Bucket, len(labels))
	for i, l := range labels {
		buckets[i].Label = l
	}
	for _, n := range counts {
		placed := false
		for i, b := range bounds {
			if n <= b {
				buckets[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			buckets[len(buckets)-1].Count++
		}
	}
	return buckets
}

// CountValues tallies occurrences of each value.
func CountValues(values []string) map[string]int {
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}
	return counts
}

// TopCounts returns the n largest (key, count) pairs, ties broken by key so
// output is stable across runs. n <= 0 returns all pairs.
func TopCounts(counts map[string]int, n int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for k, c := range counts {
		out = append(out, Bucket{Label: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// MonthCount is an event count for one calendar month and cohort.
type MonthCount struct {
	Month string       `json:"month"`
	Label cohort.Label `json:"label"`
	Count int          `json:"count"`
}

// MonthlyCounts tallies records by year-month and cohort, sorted by month
// then label. Records without a valid timestamp are skipped.
func MonthlyCounts(records []cohort.Tagged) []MonthCount {
	type key struct {
		month string
		label cohort.Label
	}
	counts := map[key]int{}
	for _, rec := range records {
		if !rec.HasTime {
			continue
		}
		counts[key{rec.Timestamp.Format("2006-01"), rec.Label}]++
	}
	out := make([]MonthCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, MonthCount{Month: k.month, Label: k.label, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Label < out[j].Label
	})
	return out
}
