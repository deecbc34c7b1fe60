// Package aggregate turns tagged records into wide pre/post comparison
// tables with delta and percent-change columns, plus the supporting count
// distributions used by the violation analyses.
//
// Null semantics: a group key missing one cohort gets a null cell, never
// zero; percent change with a zero or absent baseline is null, never Inf.
package aggregate
