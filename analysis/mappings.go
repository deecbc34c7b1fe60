package analysis

import (
	"github.com/datastorm-nyc/ace-impact/schema"
)

// Canonical field names shared by the analyses.
const (
	FieldSpeed         = "avg_speed_mph"
	FieldTripCount     = "bus_trip_count"
	FieldBorough       = "borough"
	FieldRoute         = "bus_route_id"
	FieldStatus        = "violation_status"
	FieldViolationType = "violation_type"
)

// SpeedMapping covers both the title-cased Socrata speeds export and the
// snake-cased pre-processed variant.
var SpeedMapping = schema.Mapping{
	{
		Canonical:  "route_id",
		Kind:       schema.KindKey,
		Candidates: []string{"Route ID", "route_id", "bus_route_id"},
		Substrings: []string{"route"},
		Required:   true,
	},
	{
		Canonical:  "timestamp",
		Kind:       schema.KindTime,
		Candidates: []string{"Timestamp", "timestamp"},
	},
	{
		Canonical:  FieldSpeed,
		Kind:       schema.KindFloat,
		Candidates: []string{"Average Road Speed", "avg_speed_mph"},
		Substrings: []string{"speed"},
	},
	{
		Canonical:  FieldTripCount,
		Kind:       schema.KindFloat,
		Candidates: []string{"Bus Trip Count", "bus_trip_count"},
	},
	{
		Canonical:  FieldBorough,
		Kind:       schema.KindString,
		Candidates: []string{"Borough", "borough"},
	},
	{
		Canonical:  "lat",
		Kind:       schema.KindLatitude,
		Candidates: []string{"Timepoint Stop Latitude", "tp_stop_lat"},
		Substrings: []string{"stop", "latitude"},
	},
	{
		Canonical:  "lon",
		Kind:       schema.KindLongitude,
		Candidates: []string{"Timepoint Stop Longitude", "tp_stop_lon"},
		Substrings: []string{"stop", "longitude"},
	},
}

// ACERouteMapping extracts just enough from a violations export to learn
// which routes had camera enforcement in a period.
var ACERouteMapping = schema.Mapping{
	{
		Canonical:  "route_id",
		Kind:       schema.KindKey,
		Candidates: []string{"bus_route_id", "Route ID", "route_id"},
		Substrings: []string{"route"},
		Required:   true,
	},
	{
		Canonical:  "timestamp",
		Kind:       schema.KindTime,
		Candidates: []string{"first_occurrence", "First Occurrence"},
		Substrings: []string{"first", "occurrence"},
	},
}

// ViolatorMapping keys violation records by vehicle for repeat-offender
// analysis. License plate columns win over the vehicle id.
var ViolatorMapping = schema.Mapping{
	{
		Canonical:  "vehicle",
		Kind:       schema.KindKey,
		Candidates: []string{"license_plate", "plate_id", "vehicle_id"},
		Substrings: []string{"plate"},
		Required:   true,
	},
	{
		Canonical:  FieldRoute,
		Kind:       schema.KindString,
		Candidates: []string{"bus_route_id", "Route ID"},
		Substrings: []string{"route"},
	},
	{
		Canonical:  FieldStatus,
		Kind:       schema.KindString,
		Candidates: []string{"violation_status", "Violation Status"},
		Substrings: []string{"status"},
	},
	{
		Canonical:  "timestamp",
		Kind:       schema.KindTime,
		Candidates: []string{"first_occurrence", "First Occurrence"},
		Substrings: []string{"first", "occurrence"},
	},
}

// CBDMapping keys violation records by route for the congestion-pricing
// comparison.
var CBDMapping = schema.Mapping{
	{
		Canonical:  "route_id",
		Kind:       schema.KindKey,
		Candidates: []string{"bus_route_id", "Route ID", "route_id"},
		Substrings: []string{"route"},
		Required:   true,
	},
	{
		Canonical:  "timestamp",
		Kind:       schema.KindTime,
		Candidates: []string{"first_occurrence", "First Occurrence"},
		Substrings: []string{"first", "occurrence"},
	},
	{
		Canonical:  FieldViolationType,
		Kind:       schema.KindString,
		Candidates: []string{"violation_type", "Violation Type"},
		Substrings: []string{"violation", "type"},
	},
	{
		Canonical:  "lat",
		Kind:       schema.KindLatitude,
		Candidates: []string{"violation_latitude"},
		Substrings: []string{"lat"},
	},
	{
		Canonical:  "lon",
		Kind:       schema.KindLongitude,
		Candidates: []string{"violation_longitude"},
		Substrings: []string{"lon"},
	},
}

// CampusMapping reads the optional campus reference file
// (name, latitude, longitude).
var CampusMapping = schema.Mapping{
	{
		Canonical:  "name",
		Kind:       schema.KindKey,
		Candidates: []string{"name", "campus"},
		Substrings: []string{"name"},
		Required:   true,
	},
	{
		Canonical:  "lat",
		Kind:       schema.KindLatitude,
		Candidates: []string{"latitude", "lat"},
		Substrings: []string{"lat"},
	},
	{
		Canonical:  "lon",
		Kind:       schema.KindLongitude,
		Candidates: []string{"longitude", "lon", "lng"},
		Substrings: []string{"lon"},
	},
}
