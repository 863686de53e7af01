package impute

import (
	"math"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// fill replaces Absent cells with a per-column statistic computed over the
// column's non-NaN Number values. Columns without any Number
// value are left alone.
func fill(ds p.Dataset, stat func([]float64) float64) p.Dataset {
	fills := map[string]float64{}
	for _, c := range ds.Columns() {
		vals := make([]float64, 0, len(ds))
		for _, f := range ds.Numbers(c) {
			if !math.IsNaN(f) {
				vals = append(vals, f)
			}
		}
		if len(vals) > 0 {
			fills[c] = stat(vals)
		}
	}
	out := make(p.Dataset, len(ds))
	for i, r := range ds {
		nr := r.Clone()
		for c, f := range fills {
			if v, ok := r.Get(c); ok && v.IsAbsent() {
				nr.Set(c, p.Number(f))
			}
		}
		out[i] = nr
	}
	return out
}
