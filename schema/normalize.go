package schema

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when coercing timestamp cells. The first
// two cover Socrata floating timestamps, the rest common export formats.
var timeLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 03:04:05 PM",
	"01/02/2006",
	"2006-01",
}

// Result is the outcome of normalizing one input table.
type Result struct {
	Records []Record
	// Resolved maps canonical fields to the source columns that served them.
	Resolved Resolution
	// DroppedRows counts rows discarded for an empty group key.
	DroppedRows int
	// Source is the input identifier carried onto every record.
	Source string
}

// ParseTime coerces a cell into a timestamp, reporting success.
func ParseTime(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseFloat coerces a cell into a float, reporting success. Non-finite
// tokens (NaN, Inf) are treated as missing values.
func ParseFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NormalizeRows maps a raw table onto the canonical fields of the mapping.
// It fails only when a required field cannot be resolved; cell-level coercion
// failures become missing values.
func NormalizeRows(header []string, rows [][]string, m Mapping, source string) (*Result, error) {
	cols, resolved, err := m.Resolve(header)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, field string) (string, bool) {
		idx, ok := cols[field]
		if !ok || idx >= len(row) {
			return "", false
		}
		return row[idx], true
	}

	out := &Result{Resolved: resolved, Source: source}
	for _, row := range rows {
		rec := Record{Source: source}
		var lat, lon float64
		var hasLat, hasLon bool
		for _, f := range m {
			raw, ok := cell(row, f.Canonical)
			if !ok {
				continue
			}
			switch f.Kind {
			case KindKey:
				rec.Key = strings.TrimSpace(raw)
			case KindTime:
				rec.Timestamp, rec.HasTime = ParseTime(raw)
			case KindFloat:
				if v, ok := ParseFloat(raw); ok {
					if rec.Numbers == nil {
						rec.Numbers = map[string]float64{}
					}
					rec.Numbers[f.Canonical] = v
				}
			case KindString:
				if s := strings.TrimSpace(raw); s != "" {
					if rec.Strings == nil {
						rec.Strings = map[string]string{}
					}
					rec.Strings[f.Canonical] = s
				}
			case KindLatitude:
				lat, hasLat = ParseFloat(raw)
			case KindLongitude:
				lon, hasLon = ParseFloat(raw)
			}
		}
		if rec.Key == "" {
			out.DroppedRows++
			continue
		}
		if hasLat && hasLon {
			rec.Latitude, rec.Longitude, rec.HasCoord = lat, lon, true
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// NormalizeMaps normalizes rows that arrive as key/value maps, such as the
// records returned by an open-data API. The synthetic header is the sorted
// union of keys across all rows.
func NormalizeMaps(rows []map[string]string, m Mapping, source string) (*Result, error) {
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	header := make([]string, 0, len(seen))
	for k := range seen {
		header = append(header, k)
	}
	sort.Strings(header)

	flat := make([][]string, len(rows))
	for i, row := range rows {
		r := make([]string, len(header))
		for j, k := range header {
			r[j] = row[k]
		}
		flat[i] = r
	}
	return NormalizeRows(header, flat, m, source)
}
