package aggregate

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/datastorm-nyc/ace-impact/cohort"
	"github.com/datastorm-nyc/ace-impact/schema"
)

func tagged(key string, ts string, label cohort.Label, speed float64) cohort.Tagged {
	t, _ := time.Parse("2006-01-02", ts)
	return cohort.Tagged{
		Record: schema.Record{
			Key:       key,
			Timestamp: t,
			HasTime:   true,
			Numbers:   map[string]float64{"avg_speed_mph": speed},
		},
		Label: label,
	}
}

func speedOf(t cohort.Tagged) (float64, bool) {
	v, ok := t.Numbers["avg_speed_mph"]
	return v, ok
}

func keyOf(t cohort.Tagged) string { return t.Key }

func TestMeanByCohort_PrePostDelta(t *testing.T) {
	recs := []cohort.Tagged{
		tagged("M1", "2024-06-01", cohort.Pre, 5.0),
		tagged("M1", "2025-06-01", cohort.Post, 7.0),
	}
	c := MeanByCohort(recs, keyOf, speedOf)
	row, ok := c.Find("M1")
	if !ok {
		t.Fatal("missing row for M1")
	}
	if !row.Pre.Valid || row.Pre.Float64 != 5.0 {
		t.Errorf("pre = %+v, want 5.0", row.Pre)
	}
	if !row.Post.Valid || row.Post.Float64 != 7.0 {
		t.Errorf("post = %+v, want 7.0", row.Post)
	}
	if !row.Delta.Valid || row.Delta.Float64 != 2.0 {
		t.Errorf("delta = %+v, want 2.0", row.Delta)
	}
	if !row.PercentChange.Valid || row.PercentChange.Float64 != 40.0 {
		t.Errorf("percent change = %+v, want 40.0", row.PercentChange)
	}
}

func TestMeanByCohort_MissingCohortIsNull(t *testing.T) {
	recs := []cohort.Tagged{
		tagged("M5", "2024-06-01", cohort.Pre, 8.0),
		tagged("M5", "2024-07-01", cohort.Pre, 10.0),
	}
	c := MeanByCohort(recs, keyOf, speedOf)
	row, _ := c.Find("M5")
	if !row.Pre.Valid || row.Pre.Float64 != 9.0 {
		t.Errorf("pre mean = %+v, want 9.0", row.Pre)
	}
	if row.Post.Valid {
		t.Error("post cell must be null, not zero, for a pre-only key")
	}
	if row.Delta.Valid {
		t.Error("delta must be null when one side is missing")
	}
	if row.PercentChange.Valid {
		t.Error("percent change must be null when one side is missing")
	}
}

func TestCountByCohort_ZeroBaseline(t *testing.T) {
	// A route that only appears post-cutoff has no baseline: percent change
	// must be null, never Inf.
	recs := []cohort.Tagged{
		tagged("M23", "2025-02-01", cohort.Post, 0),
		tagged("M23", "2025-03-01", cohort.Post, 0),
	}
	c := CountByCohort(recs, keyOf)
	row, _ := c.Find("M23")
	if !row.Post.Valid || row.Post.Float64 != 2 {
		t.Errorf("post count = %+v, want 2", row.Post)
	}
	if row.PercentChange.Valid {
		t.Error("percent change with no pre baseline must be null")
	}
}

func TestPercentChange_ZeroPre(t *testing.T) {
	got := percentChange(Of(0), Of(5))
	if got.Valid {
		t.Error("zero baseline must yield a null percent change, not Inf")
	}
}

func TestComparison_Idempotence(t *testing.T) {
	recs := []cohort.Tagged{
		tagged("M2", "2024-06-01", cohort.Pre, 6.1),
		tagged("M1", "2025-06-01", cohort.Post, 7.0),
		tagged("M1", "2024-06-01", cohort.Pre, 5.0),
		tagged("M3", "2025-04-01", cohort.Post, 9.9),
	}
	first, err := json.Marshal(MeanByCohort(recs, keyOf, speedOf))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(MeanByCohort(recs, keyOf, speedOf))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated aggregation of the same input must serialize identically")
	}
}

func TestNullFloat_JSON(t *testing.T) {
	b, err := json.Marshal(Row{Key: "M1", Pre: Of(5)})
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if !bytes.Contains(b, []byte(`"post":null`)) {
		t.Errorf("null cell should marshal as null, got %s", s)
	}
	if !bytes.Contains(b, []byte(`"pre":5`)) {
		t.Errorf("present cell should marshal as a number, got %s", s)
	}
}
