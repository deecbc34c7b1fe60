package cohort

import (
	"strings"
	"time"

	"github.com/datastorm-nyc/ace-impact/geo"
	"github.com/datastorm-nyc/ace-impact/schema"
)

// Label classifies a record relative to the policy cutoff.
type Label string

const (
	Pre  Label = "pre"
	Post Label = "post"
)

// Split assigns the label for a timestamp. The interval is closed-open:
// t == cutoff is post.
func Split(t, cutoff time.Time) Label {
	if t.Before(cutoff) {
		return Pre
	}
	return Post
}

// Strategy decides a record's cohort label. The second return is false when
// the record cannot be classified and must be dropped.
type Strategy interface {
	Label(rec schema.Record) (Label, bool)
}

// FixedCutoff labels records by comparing their timestamp to an injected
// policy date. Records without a valid timestamp are unclassifiable.
type FixedCutoff struct {
	Cutoff time.Time
}

func (s FixedCutoff) Label(rec schema.Record) (Label, bool) {
	if !rec.HasTime {
		return "", false
	}
	return Split(rec.Timestamp, s.Cutoff), true
}

// YearRule labels records from a 4-digit year substring in the source
// identifier, the declared replacement for inferring periods from incidental
// file names. When the source names neither year the optional Fallback is
// consulted.
type YearRule struct {
	PreYear  string
	PostYear string
	Fallback Strategy
}

func (s YearRule) Label(rec schema.Record) (Label, bool) {
	src := strings.ToLower(rec.Source)
	hasPre := s.PreYear != "" && strings.Contains(src, s.PreYear)
	hasPost := s.PostYear != "" && strings.Contains(src, s.PostYear)
	// A source naming both years is ambiguous; defer to the fallback.
	if hasPre != hasPost {
		if hasPre {
			return Pre, true
		}
		return Post, true
	}
	if s.Fallback != nil {
		return s.Fallback.Label(rec)
	}
	return "", false
}

// Membership computes the optional boolean tag on a labeled record.
type Membership interface {
	Member(rec schema.Record, label Label) bool
}

// NearPoints flags records within RadiusMeters of any reference point.
// Records without coordinates are never members.
type NearPoints struct {
	Points       []geo.Point
	RadiusMeters float64
}

func (m NearPoints) Member(rec schema.Record, _ Label) bool {
	if !rec.HasCoord {
		return false
	}
	return geo.WithinAny(rec.Latitude, rec.Longitude, m.Points, m.RadiusMeters)
}

// InZone flags records whose coordinate falls inside a bounding box.
type InZone struct {
	Box geo.BoundingBox
}

func (m InZone) Member(rec schema.Record, _ Label) bool {
	if !rec.HasCoord {
		return false
	}
	return m.Box.Contains(rec.Latitude, rec.Longitude)
}

// RouteSet flags records whose key appears in the allow-list for their
// cohort. A nil per-label set means no membership in that cohort.
type RouteSet struct {
	PerLabel map[Label]map[string]bool
}

// NewRouteSet builds a RouteSet granting the same routes to both cohorts.
func NewRouteSet(routes []string) RouteSet {
	set := make(map[string]bool, len(routes))
	for _, r := range routes {
		set[strings.TrimSpace(r)] = true
	}
	return RouteSet{PerLabel: map[Label]map[string]bool{Pre: set, Post: set}}
}

func (m RouteSet) Member(rec schema.Record, label Label) bool {
	return m.PerLabel[label][rec.Key]
}

// Tagged is a record with its derived cohort label and membership flag.
type Tagged struct {
	schema.Record
	Label  Label
	Member bool
}

// Splitter applies a labeling strategy and an optional membership rule.
type Splitter struct {
	Strategy   Strategy
	Membership Membership
}

// Tag labels every record, dropping (and counting) those the strategy cannot
// classify. Membership defaults to false when no rule is configured.
func (s Splitter) Tag(records []schema.Record) (tagged []Tagged, dropped int) {
	for _, rec := range records {
		label, ok := s.Strategy.Label(rec)
		if !ok {
			dropped++
			continue
		}
		t := Tagged{Record: rec, Label: label}
		if s.Membership != nil {
			t.Member = s.Membership.Member(rec, label)
		}
		tagged = append(tagged, t)
	}
	return tagged, dropped
}
