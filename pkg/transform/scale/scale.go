// Package scale rescales numeric feature columns. A feature is any
// non-target column whose every value is a Number.
package scale

import (
	"context"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/stats"
)

// affine maps each feature value v to (v-shift)/div.
func affine(ds p.Dataset, target string, params func([]float64) (shift, div float64)) p.Dataset {
	cols := ds.NumericColumns(target)
	if len(cols) == 0 {
		return ds
	}
	shift := make([]float64, len(cols))
	div := make([]float64, len(cols))
	for k, c := range cols {
		shift[k], div[k] = params(ds.Numbers(c))
	}
	out := make(p.Dataset, len(ds))
	for i, r := range ds {
		nr := r.Clone()
		for k, c := range cols {
			f, _ := r.Value(c).Float()
			nr.Set(c, p.Number((f-shift[k])/div[k]))
		}
		out[i] = nr
	}
	return out
}

// Standard centers features on the population mean and divides by the
// population standard deviation, or by 1 when it is zero.
type Standard struct{ Target string }

func (t *Standard) Name() string { return "scale_standard" }

func (t *Standard) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	return affine(ds, t.Target, func(vals []float64) (float64, float64) {
		mean, std := stats.MeanStd(vals)
		if std == 0 {
			std = 1
		}
		return mean, std
	}), nil
}

// MinMax maps features onto [0, 1]. Constant columns map to 0.
type MinMax struct{ Target string }

func (t *MinMax) Name() string { return "scale_minmax" }

func (t *MinMax) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	return affine(ds, t.Target, func(vals []float64) (float64, float64) {
		lo, hi := stats.MinMax(vals)
		if hi == lo {
			hi = lo + 1
		}
		return lo, hi - lo
	}), nil
}
