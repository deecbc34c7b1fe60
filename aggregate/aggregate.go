package aggregate

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/datastorm-nyc/ace-impact/cohort"
)

// NullFloat is a float64 that can be absent. It marshals to JSON null when
// invalid so "no baseline" is never misread as zero.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Of wraps a present value.
func Of(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Null is the absent value.
func Null() NullFloat {
	return NullFloat{}
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Float64); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Format renders the value with the given precision, or placeholder when
// absent.
func (n NullFloat) Format(prec int, placeholder string) string {
	if !n.Valid {
		return placeholder
	}
	return strconv.FormatFloat(n.Float64, 'f', prec, 64)
}

// Row is one line of a Comparison: the wide pre/post view for a single group
// key with its derived change columns.
type Row struct {
	Key           string    `json:"key"`
	Pre           NullFloat `json:"pre"`
	Post          NullFloat `json:"post"`
	Delta         NullFloat `json:"delta"`
	PercentChange NullFloat `json:"percent_change"`
	PreCount      int       `json:"pre_count"`
	PostCount     int       `json:"post_count"`
}

// Comparison is the pivoted per-key cohort comparison table. Rows are sorted
// by key so repeated runs over the same input serialize identically.
type Comparison struct {
	Rows []Row `json:"rows"`
}

// Find returns the row for a key, if present.
func (c Comparison) Find(key string) (Row, bool) {
	for _, r := range c.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// KeyFunc extracts the group key from a tagged record.
type KeyFunc func(cohort.Tagged) string

// ValueFunc extracts the measurement from a tagged record; ok is false when
// the record carries no usable value and must be excluded from the mean.
type ValueFunc func(cohort.Tagged) (float64, bool)

type accum struct {
	preSum, postSum float64
	preN, postN     int
}

func (a *accum) add(label cohort.Label, v float64) {
	if label == cohort.Pre {
		a.preSum += v
		a.preN++
	} else {
		a.postSum += v
		a.postN++
	}
}

func finalize(groups map[string]*accum, mean bool) Comparison {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		a := groups[k]
		row := Row{Key: k, PreCount: a.preN, PostCount: a.postN}
		if a.preN > 0 {
			if mean {
				row.Pre = Of(a.preSum / float64(a.preN))
			} else {
				row.Pre = Of(a.preSum)
			}
		}
		if a.postN > 0 {
			if mean {
				row.Post = Of(a.postSum / float64(a.postN))
			} else {
				row.Post = Of(a.postSum)
			}
		}
		row.Delta = delta(row.Pre, row.Post)
		row.PercentChange = percentChange(row.Pre, row.Post)
		rows = append(rows, row)
	}
	return Comparison{Rows: rows}
}

func delta(pre, post NullFloat) NullFloat {
	if !pre.Valid || !post.Valid {
		return Null()
	}
	return Of(post.Float64 - pre.Float64)
}

// percentChange is null, not infinite, when the baseline is absent or zero.
func percentChange(pre, post NullFloat) NullFloat {
	if !pre.Valid || !post.Valid || pre.Float64 == 0 {
		return Null()
	}
	return Of((post.Float64 - pre.Float64) / pre.Float64 * 100)
}

// MeanByCohort groups records by key and cohort, computing the mean of the
// extracted value per cell. A key missing one cohort gets a null cell.
func MeanByCohort(records []cohort.Tagged, key KeyFunc, value ValueFunc) Comparison {
	groups := map[string]*accum{}
	for _, rec := range records {
		v, ok := value(rec)
		if !ok {
			continue
		}
		k := key(rec)
		a := groups[k]
		if a == nil {
			a = &accum{}
			groups[k] = a
		}
		a.add(rec.Label, v)
	}
	return finalize(groups, true)
}

// CountByCohort groups records by key and cohort, counting events per cell.
func CountByCohort(records []cohort.Tagged, key KeyFunc) Comparison {
	groups := map[string]*accum{}
	for _, rec := range records {
		k := key(rec)
		a := groups[k]
		if a == nil {
			a = &accum{}
			groups[k] = a
		}
		a.add(rec.Label, 1)
	}
	return finalize(groups, false)
}
