// Package analysis orchestrates the three batch analyses over the
// normalize, split and aggregate chain: speed trends on bus routes, repeat
// camera-enforcement violators, and congestion-pricing impact on CBD route
// violations.
//
// Each analysis is a pure one-shot transformation of its loaded inputs. A
// file that cannot be used is skipped with a logged reason; a run with no
// usable input at all fails with ErrNoUsableInput.
package analysis
