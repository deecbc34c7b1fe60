package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind declares how a canonical field's cells are coerced.
type Kind int

const (
	// KindKey is the string group key. Rows with an empty key are dropped.
	KindKey Kind = iota
	// KindTime is the primary timestamp. Unparseable cells leave the record
	// without a valid timestamp rather than failing.
	KindTime
	// KindFloat is a numeric measurement. Unparseable cells become missing.
	KindFloat
	// KindString is a categorical field.
	KindString
	// KindLatitude and KindLongitude form the optional coordinate pair.
	KindLatitude
	KindLongitude
)

// FieldSpec describes one canonical field and how to locate it in a raw
// header: exact candidate names are tried in priority order, then every
// header is tested for containing all of the fallback substrings.
type FieldSpec struct {
	Canonical  string
	Kind       Kind
	Candidates []string
	Substrings []string
	Required   bool
}

// Mapping is the ordered list of canonical fields requested from an input.
type Mapping []FieldSpec

// ErrUnresolvedField is returned when a required field matches no header.
// The caller must treat the whole file as unusable.
var ErrUnresolvedField = errors.New("required field not found in header")

// Resolution records which source column served each canonical field.
type Resolution map[string]string

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// resolve locates the column index for the field, or -1 when absent.
func (f FieldSpec) resolve(header []string) int {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = normalizeHeader(h)
	}
	for _, cand := range f.Candidates {
		want := normalizeHeader(cand)
		for i, h := range lowered {
			if h == want {
				return i
			}
		}
	}
	if len(f.Substrings) == 0 {
		return -1
	}
	for i, h := range lowered {
		all := true
		for _, sub := range f.Substrings {
			if !strings.Contains(h, strings.ToLower(sub)) {
				all = false
				break
			}
		}
		if all {
			return i
		}
	}
	return -1
}

// Resolve maps every field of the mapping onto a column index. A required
// field with no match yields ErrUnresolvedField naming the field.
func (m Mapping) Resolve(header []string) (map[string]int, Resolution, error) {
	cols := make(map[string]int, len(m))
	res := make(Resolution, len(m))
	for _, f := range m {
		idx := f.resolve(header)
		if idx < 0 {
			if f.Required {
				return nil, nil, fmt.Errorf("resolve %q: %w", f.Canonical, ErrUnresolvedField)
			}
			continue
		}
		cols[f.Canonical] = idx
		res[f.Canonical] = header[idx]
	}
	return cols, res, nil
}
