package schema

import "time"

// Record is one normalized input row. It is immutable after normalization;
// cohort labels and membership flags are derived alongside, not mutated in.
type Record struct {
	// Key is the resolved group key (route id, vehicle id). Never empty for
	// records that survive normalization.
	Key string

	// Timestamp is the primary timestamp; HasTime is false when the source
	// cell was absent or unparseable.
	Timestamp time.Time
	HasTime   bool

	// Numbers holds coerced numeric measurements by canonical field name.
	// A field that failed coercion is simply absent.
	Numbers map[string]float64

	// Strings holds categorical fields by canonical field name.
	Strings map[string]string

	// Latitude/Longitude are set only when HasCoord is true.
	Latitude  float64
	Longitude float64
	HasCoord  bool

	// Source identifies the input the record came from (file name or dataset
	// id). Cohort year rules key off it.
	Source string
}

// Number returns the named measurement and whether it was present.
func (r Record) Number(field string) (float64, bool) {
	v, ok := r.Numbers[field]
	return v, ok
}

// String returns the named categorical field, empty when absent.
func (r Record) String(field string) string {
	return r.Strings[field]
}
