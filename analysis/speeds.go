package analysis

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/datastorm-nyc/ace-impact/aggregate"
	"github.com/datastorm-nyc/ace-impact/cohort"
	"github.com/datastorm-nyc/ace-impact/config"
	"github.com/datastorm-nyc/ace-impact/report"
)

// SpeedTrendsResult holds the pre/post speed comparisons for one run.
type SpeedTrendsResult struct {
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
	Cutoff      string `json:"cutoff"`

	FilesUsed    []string `json:"files_used"`
	FilesSkipped []string `json:"files_skipped,omitempty"`
	Records      int      `json:"records"`
	DroppedRows  int      `json:"dropped_rows"`
	// Unclassified counts records with no cohort label (no usable timestamp
	// and a source naming neither year); they are excluded from aggregation.
	Unclassified int `json:"unclassified"`

	Overall aggregate.Comparison `json:"overall"`
	ACE     aggregate.Comparison `json:"ace_vs_non_ace"`
	Routes  aggregate.Comparison `json:"routes"`

	CampusEnabled bool                 `json:"campus_enabled"`
	Campus        aggregate.Comparison `json:"campus_routes,omitempty"`
}

// SpeedTrends compares mean bus segment speeds across the pre and post
// cohorts: overall, ACE vs non-ACE routes, per route, and per route for
// campus-adjacent segments when a campus file is present.
func SpeedTrends(cfg config.AppConfig, log zerolog.Logger) (*SpeedTrendsResult, error) {
	speeds, used, skipped, droppedRows := loadAll(cfg.Paths.RawDir, cfg.Speeds.Files, SpeedMapping, log)
	if len(speeds) == 0 {
		return nil, ErrNoUsableInput
	}

	strategy := cohort.YearRule{
		PreYear:  cfg.Speeds.PreYear,
		PostYear: cfg.Speeds.PostYear,
		Fallback: cohort.FixedCutoff{Cutoff: cfg.Cutoff()},
	}

	// ACE membership: which routes had camera enforcement in each period.
	aceRoutes := loadACERouteSets(cfg, strategy, log)

	splitter := cohort.Splitter{Strategy: strategy, Membership: aceRoutes}
	tagged, unclassified := splitter.Tag(speeds)

	speedOf := func(t cohort.Tagged) (float64, bool) { return t.Number(FieldSpeed) }

	result := &SpeedTrendsResult{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Cutoff:       cfg.CutoffDate,
		FilesUsed:    used,
		FilesSkipped: skipped,
		Records:      len(tagged),
		DroppedRows:  droppedRows,
		Unclassified: unclassified,
		Overall: aggregate.MeanByCohort(tagged,
			func(cohort.Tagged) string { return "all routes" }, speedOf),
		ACE: aggregate.MeanByCohort(tagged, func(t cohort.Tagged) string {
			if t.Member {
				return "ACE routes"
			}
			return "Non-ACE routes"
		}, speedOf),
		Routes: aggregate.MeanByCohort(tagged,
			func(t cohort.Tagged) string { return t.Key }, speedOf),
	}

	campuses := loadCampuses(resolvePath(cfg.Paths.RawDir, cfg.Speeds.CampusFile), log)
	if len(campuses) > 0 {
		result.CampusEnabled = true
		near := cohort.NearPoints{Points: campuses, RadiusMeters: cfg.Speeds.CampusRadiusMeters}
		var adjacent []cohort.Tagged
		for _, t := range tagged {
			if near.Member(t.Record, t.Label) {
				adjacent = append(adjacent, t)
			}
		}
		result.Campus = aggregate.MeanByCohort(adjacent,
			func(t cohort.Tagged) string { return t.Key }, speedOf)
	}

	log.Info().Str("run_id", result.RunID).Int("records", result.Records).
		Int("unclassified", unclassified).Msg("speed trends computed")
	return result, nil
}

// loadACERouteSets derives the per-cohort enforced-route sets from the
// violation exports. Missing files just leave the sets empty.
func loadACERouteSets(cfg config.AppConfig, strategy cohort.Strategy, log zerolog.Logger) cohort.RouteSet {
	perLabel := map[cohort.Label]map[string]bool{
		cohort.Pre:  {},
		cohort.Post: {},
	}
	records, _, _, _ := loadAll(cfg.Paths.RawDir, cfg.Speeds.ViolationFiles, ACERouteMapping, log)
	for _, rec := range records {
		label, ok := strategy.Label(rec)
		if !ok {
			continue
		}
		perLabel[label][rec.Key] = true
	}
	return cohort.RouteSet{PerLabel: perLabel}
}

// TopByDelta returns up to n route rows with computable deltas, largest
// improvement first.
func (r *SpeedTrendsResult) TopByDelta(n int) aggregate.Comparison {
	rows := make([]aggregate.Row, 0, len(r.Routes.Rows))
	for _, row := range r.Routes.Rows {
		if row.Delta.Valid {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Delta.Float64 > rows[j].Delta.Float64
	})
	if n > 0 && n < len(rows) {
		rows = rows[:n]
	}
	return aggregate.Comparison{Rows: rows}
}

// Write serializes the Markdown report and the supporting tables.
func (r *SpeedTrendsResult) Write(dir string) error {
	md := report.NewMarkdown("Bus Route Speed Trends")
	md.Line("")
	md.Line("Mean segment speeds compared across pre- and post- periods, with")
	md.Line("ACE vs non-ACE route tagging and optional campus-adjacent filtering.")
	md.Section("Overall")
	if row, ok := r.Overall.Find("all routes"); ok {
		md.Metric("Average speed (pre)", row.Pre, "mph")
		md.Metric("Average speed (post)", row.Post, "mph")
		md.Metric("Change (post - pre)", row.Delta, "mph")
	}
	md.Section("ACE vs non-ACE routes")
	md.ComparisonTable("Route group", r.ACE, 0)
	md.Section("Top routes by speed change")
	md.ComparisonTable("Route", r.TopByDelta(12), 0)
	if r.CampusEnabled {
		md.Section("Campus-adjacent segments")
		md.ComparisonTable("Route", r.Campus, 15)
	}

	if err := md.Write(filepath.Join(dir, "speed_trends_report.md")); err != nil {
		return err
	}
	if err := report.WriteComparisonCSV(filepath.Join(dir, "route_speed_comparison.csv"), "route_id", r.Routes); err != nil {
		return err
	}
	if r.CampusEnabled {
		if err := report.WriteComparisonCSV(filepath.Join(dir, "campus_route_speed_comparison.csv"), "route_id", r.Campus); err != nil {
			return err
		}
	}
	return report.WriteJSON(filepath.Join(dir, "speed_trends.json"), r)
}
