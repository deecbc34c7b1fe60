// Package schema normalizes heterogeneous tabular exports onto a canonical
// field set.
//
// Column discovery is driven by an explicit Mapping: for each canonical field
// an ordered list of candidate header names is tried first, then a substring
// fallback against lower-cased headers. Cell coercion never fails a file; an
// unparseable value becomes a missing value. A file is rejected as a whole
// only when a required field cannot be resolved by any candidate.
package schema
