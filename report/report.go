package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/datastorm-nyc/ace-impact/aggregate"
)

// NotComputable is the placeholder surfaced when a change column has no
// baseline.
const NotComputable = "not computable"

// WriteComparisonCSV serializes a comparison table. Null cells become empty
// fields, never zeros.
func WriteComparisonCSV(path, keyHeader string, c aggregate.Comparison) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{keyHeader, "pre", "post", "delta", "percent_change", "pre_count", "post_count"}); err != nil {
		return err
	}
	for _, row := range c.Rows {
		rec := []string{
			row.Key,
			row.Pre.Format(4, ""),
			row.Post.Format(4, ""),
			row.Delta.Format(4, ""),
			row.PercentChange.Format(2, ""),
			strconv.Itoa(row.PreCount),
			strconv.Itoa(row.PostCount),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteBucketCSV serializes a labeled count table.
func WriteBucketCSV(path, labelHeader, countHeader string, buckets []aggregate.Bucket) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{labelHeader, countHeader}); err != nil {
		return err
	}
	for _, b := range buckets {
		if err := w.Write([]string{b.Label, strconv.Itoa(b.Count)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON serializes any result artifact with stable indentation.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
