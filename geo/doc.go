// Package geo provides great-circle distance and zone-membership helpers for
// tagging records by proximity to fixed reference points.
package geo
