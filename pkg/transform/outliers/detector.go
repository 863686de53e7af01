package outliers

import (
	"context"
	"math"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/stats"
)

// Column is the flag added to every record.
const Column = "isOutlier"

const (
	IQR             = "iqr"
	ZScore          = "zscore"
	IsolationForest = "isolation_forest"
)

// zEpsilon keeps the z-score finite on constant columns.
const zEpsilon = 1e-12

// Detector flags rows holding an extreme value in any all-numeric column.
// Rows are never removed.
type Detector struct{ Method string }

func (t *Detector) Name() string { return "detect_outliers" }

func (t *Detector) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	var flagged map[int]bool
	switch t.Method {
	case IQR:
		flagged = flag(ds, iqrBounds)
	case ZScore:
		flagged = flag(ds, zBounds)
	case IsolationForest:
		p.Warn(ctx, p.Unsupported(t.Name(), "outlierMethod", t.Method))
		flagged = map[int]bool{}
	default:
		p.Warn(ctx, p.Unknown(t.Name(), "outlierMethod", t.Method))
		return ds, nil
	}
	out := make(p.Dataset, len(ds))
	for i, r := range ds {
		nr := r.Clone()
		nr.Set(Column, p.Bool(flagged[i]))
		out[i] = nr
	}
	return out, nil
}

// bounds returns the predicate marking a value of one column as extreme.
type bounds func(vals []float64) func(float64) bool

func flag(ds p.Dataset, b bounds) map[int]bool {
	flagged := map[int]bool{}
	for _, c := range ds.NumericColumns("") {
		vals := ds.Numbers(c)
		extreme := b(vals)
		for i, v := range vals {
			if extreme(v) {
				flagged[i] = true
			}
		}
	}
	return flagged
}

func iqrBounds(vals []float64) func(float64) bool {
	q1, q3 := stats.Quartiles(vals)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr
	return func(v float64) bool { return v < lo || v > hi }
}

func zBounds(vals []float64) func(float64) bool {
	mean, std := stats.MeanStd(vals)
	std = math.Max(std, zEpsilon)
	return func(v float64) bool { return math.Abs(v-mean)/std > 3 }
}
