// Package report serializes comparison tables and narrative summaries to
// CSV, JSON and Markdown. Null cells are written as empty fields or an
// explicit "not computable" marker, never as zero.
package report
