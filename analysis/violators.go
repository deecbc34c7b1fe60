package analysis

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/datastorm-nyc/ace-impact/aggregate"
	"github.com/datastorm-nyc/ace-impact/config"
	"github.com/datastorm-nyc/ace-impact/report"
	"github.com/datastorm-nyc/ace-impact/schema"
)

// Violation-count bands for repeat-offender classification.
var (
	violatorBounds = []int{1, 3, 5, 10}
	violatorLabels = []string{
		"Single", "2-3 Violations", "4-5 Violations", "6-10 Violations", "10+ Violations",
	}
)

// RepeatViolatorsResult summarizes exemption rates and repeat offenders in
// the violation records.
type RepeatViolatorsResult struct {
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
	Source      string `json:"source"`

	TotalViolations     int     `json:"total_violations"`
	RouteFiltered       bool    `json:"route_filtered"`
	ExemptViolations    int     `json:"exempt_violations"`
	ExemptPercentage    float64 `json:"exempt_percentage"`
	NonExemptViolations int     `json:"non_exempt_violations"`

	UniqueVehicles        int `json:"unique_vehicles"`
	RepeatViolators       int `json:"repeat_violators"`
	ChronicViolators      int `json:"chronic_violators"`
	TopViolatorViolations int `json:"top_violator_violations"`

	Buckets      []aggregate.Bucket `json:"violator_categories"`
	TopViolators []aggregate.Bucket `json:"top_violators"`
	StatusCounts []aggregate.Bucket `json:"status_counts"`
}

// RepeatViolators analyzes normalized violation records: route allow-list
// filtering, exemption keyword flagging, and per-vehicle violation-count
// bucketing. The records may come from local CSVs or a Socrata download.
func RepeatViolators(cfg config.AppConfig, log zerolog.Logger, records []schema.Record, source string) (*RepeatViolatorsResult, error) {
	if len(records) == 0 {
		return nil, ErrNoUsableInput
	}

	result := &RepeatViolatorsResult{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
	}

	// Filter to the configured routes only when the export carried a route
	// column at all.
	if hasField(records, FieldRoute) {
		allowed := make(map[string]bool, len(cfg.Violators.Routes))
		for _, r := range cfg.Violators.Routes {
			allowed[r] = true
		}
		kept := records[:0:0]
		for _, rec := range records {
			if allowed[rec.String(FieldRoute)] {
				kept = append(kept, rec)
			}
		}
		records = kept
		result.RouteFiltered = true
	}
	result.TotalViolations = len(records)

	keywords := make([]string, len(cfg.Violators.ExemptKeywords))
	for i, k := range cfg.Violators.ExemptKeywords {
		keywords[i] = strings.ToLower(k)
	}
	vehicles := make([]string, 0, len(records))
	statuses := make([]string, 0, len(records))
	for _, rec := range records {
		vehicles = append(vehicles, strings.ToUpper(rec.Key))
		status := rec.String(FieldStatus)
		if status == "" {
			status = "UNKNOWN"
		}
		statuses = append(statuses, status)
		if containsAny(strings.ToLower(status), keywords) {
			result.ExemptViolations++
		}
	}
	result.NonExemptViolations = result.TotalViolations - result.ExemptViolations
	if result.TotalViolations > 0 {
		result.ExemptPercentage = float64(result.ExemptViolations) / float64(result.TotalViolations) * 100
	}

	counts := aggregate.CountValues(vehicles)
	result.UniqueVehicles = len(counts)
	for _, n := range counts {
		if n > 1 {
			result.RepeatViolators++
		}
		if n >= 10 {
			result.ChronicViolators++
		}
		if n > result.TopViolatorViolations {
			result.TopViolatorViolations = n
		}
	}
	result.Buckets = aggregate.CountBuckets(counts, violatorBounds, violatorLabels)
	result.TopViolators = aggregate.TopCounts(counts, cfg.Violators.TopN)
	result.StatusCounts = aggregate.TopCounts(aggregate.CountValues(statuses), 0)

	log.Info().Str("run_id", result.RunID).Int("violations", result.TotalViolations).
		Int("unique_vehicles", result.UniqueVehicles).
		Int("repeat_violators", result.RepeatViolators).Msg("repeat violators computed")
	return result, nil
}

// LoadViolatorRecords normalizes the configured local violation files.
func LoadViolatorRecords(cfg config.AppConfig, log zerolog.Logger) []schema.Record {
	records, _, _, _ := loadAll(cfg.Paths.RawDir, cfg.Violators.Files, ViolatorMapping, log)
	return records
}

func hasField(records []schema.Record, field string) bool {
	for _, rec := range records {
		if _, ok := rec.Strings[field]; ok {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Write serializes the insights JSON and the supporting CSV tables.
func (r *RepeatViolatorsResult) Write(dir string) error {
	if err := report.WriteJSON(filepath.Join(dir, "violator_insights.json"), r); err != nil {
		return err
	}
	if err := report.WriteBucketCSV(filepath.Join(dir, "top_violators.csv"), "vehicle", "violation_count", r.TopViolators); err != nil {
		return err
	}
	return report.WriteBucketCSV(filepath.Join(dir, "exemption_summary.csv"), "status", "count", r.StatusCounts)
}
