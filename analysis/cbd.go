package analysis

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/datastorm-nyc/ace-impact/aggregate"
	"github.com/datastorm-nyc/ace-impact/cohort"
	"github.com/datastorm-nyc/ace-impact/config"
	"github.com/datastorm-nyc/ace-impact/report"
)

// CBDImpactResult summarizes how violations on CBD routes changed around the
// congestion-pricing cutoff.
type CBDImpactResult struct {
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
	Cutoff      string `json:"cutoff"`

	FilesUsed    []string `json:"files_used"`
	FilesSkipped []string `json:"files_skipped,omitempty"`

	TotalViolations  int                 `json:"total_violations"`
	PreViolations    int                 `json:"pre_violations"`
	PostViolations   int                 `json:"post_violations"`
	PercentChange    aggregate.NullFloat `json:"percent_change"`
	InZoneViolations int                 `json:"in_zone_violations"`
	Unclassified     int                 `json:"unclassified"`
	DateRangeStart   string              `json:"date_range_start,omitempty"`
	DateRangeEnd     string              `json:"date_range_end,omitempty"`

	Routes         aggregate.Comparison   `json:"routes"`
	ViolationTypes aggregate.Comparison   `json:"violation_types"`
	Monthly        []aggregate.MonthCount `json:"monthly"`
}

// CBDImpact filters violations to the configured CBD route list, splits them
// at the policy cutoff, and compares per-route and per-type counts.
func CBDImpact(cfg config.AppConfig, log zerolog.Logger) (*CBDImpactResult, error) {
	records, used, skipped, _ := loadAll(cfg.Paths.RawDir, cfg.CBD.Files, CBDMapping, log)
	if len(records) == 0 {
		return nil, ErrNoUsableInput
	}

	allowed := make(map[string]bool, len(cfg.CBD.Routes))
	for _, r := range cfg.CBD.Routes {
		allowed[r] = true
	}
	cbd := records[:0:0]
	for _, rec := range records {
		if allowed[rec.Key] {
			cbd = append(cbd, rec)
		}
	}
	if len(cbd) == 0 {
		log.Error().Int("records", len(records)).Msg("no violations on configured CBD routes")
		return nil, ErrNoUsableInput
	}

	splitter := cohort.Splitter{
		Strategy:   cohort.FixedCutoff{Cutoff: cfg.Cutoff()},
		Membership: cohort.InZone{Box: cfg.CBD.Zone},
	}
	tagged, unclassified := splitter.Tag(cbd)

	result := &CBDImpactResult{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Cutoff:       cfg.CutoffDate,
		FilesUsed:    used,
		FilesSkipped: skipped,
		Unclassified: unclassified,
		Routes: aggregate.CountByCohort(tagged,
			func(t cohort.Tagged) string { return t.Key }),
		ViolationTypes: aggregate.CountByCohort(tagged, func(t cohort.Tagged) string {
			if v := t.String(FieldViolationType); v != "" {
				return v
			}
			return "UNKNOWN"
		}),
		Monthly: aggregate.MonthlyCounts(tagged),
	}

	var minT, maxT time.Time
	for _, t := range tagged {
		result.TotalViolations++
		if t.Label == cohort.Pre {
			result.PreViolations++
		} else {
			result.PostViolations++
		}
		if t.Member {
			result.InZoneViolations++
		}
		if minT.IsZero() || t.Timestamp.Before(minT) {
			minT = t.Timestamp
		}
		if t.Timestamp.After(maxT) {
			maxT = t.Timestamp
		}
	}
	if !minT.IsZero() {
		result.DateRangeStart = minT.Format("2006-01-02")
		result.DateRangeEnd = maxT.Format("2006-01-02")
	}

	overall := aggregate.CountByCohort(tagged, func(cohort.Tagged) string { return "all" })
	if row, ok := overall.Find("all"); ok {
		result.PercentChange = row.PercentChange
	}

	log.Info().Str("run_id", result.RunID).Int("violations", result.TotalViolations).
		Int("pre", result.PreViolations).Int("post", result.PostViolations).
		Msg("cbd impact computed")
	return result, nil
}

// Write serializes the Markdown report and the supporting tables.
func (r *CBDImpactResult) Write(dir string) error {
	md := report.NewMarkdown("Congestion Pricing Impact on CBD Route Violations")
	md.Line("")
	md.Line("Violations on Manhattan CBD bus routes compared before and after")
	md.Line("the %s congestion-pricing cutoff.", r.Cutoff)
	md.Section("Key findings")
	md.Line("Total violations analyzed: %d", r.TotalViolations)
	md.Line("Pre-cutoff violations: %d", r.PreViolations)
	md.Line("Post-cutoff violations: %d", r.PostViolations)
	if r.PercentChange.Valid {
		md.Line("Net change: %+.1f%%", r.PercentChange.Float64)
	} else {
		md.Line("Net change: %s (no pre-cutoff baseline)", report.NotComputable)
	}
	md.Line("Violations inside the CBD zone: %d", r.InZoneViolations)
	if r.DateRangeStart != "" {
		md.Line("Data spans %s to %s.", r.DateRangeStart, r.DateRangeEnd)
	}
	md.Section("Routes")
	md.ComparisonTable("Route", r.Routes, 10)
	md.Section("Violation types")
	md.ComparisonTable("Type", r.ViolationTypes, 0)

	if err := md.Write(filepath.Join(dir, "cbd_impact_report.md")); err != nil {
		return err
	}
	if err := report.WriteComparisonCSV(filepath.Join(dir, "cbd_route_comparison.csv"), "route_id", r.Routes); err != nil {
		return err
	}
	return report.WriteJSON(filepath.Join(dir, "cbd_impact.json"), r)
}
