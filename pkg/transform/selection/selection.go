package selection

import (
	"context"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/stats"
)

// DefaultThreshold is the population variance a feature must exceed.
const DefaultThreshold = 0.1

// Variance keeps the target (when present) and the numeric features whose
// population variance is strictly above Threshold, in schema order.
// Every other column is dropped.
type Variance struct {
	Target    string
	Threshold float64
}

func (t *Variance) Name() string { return "select_variance" }

func (t *Variance) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	var keep []string
	for _, c := range ds.NumericColumns(t.Target) {
		if stats.Variance(ds.Numbers(c)) > t.Threshold {
			keep = append(keep, c)
		}
	}
	out := make(p.Dataset, len(ds))
	for i, r := range ds {
		nr := p.NewRecord()
		if v, ok := r.Get(t.Target); ok {
			nr.Set(t.Target, v)
		}
		for _, c := range keep {
			nr.Set(c, r.Value(c))
		}
		out[i] = nr
	}
	return out, nil
}

// Unsupported stands in for correlation, mutual_info and unknown methods.
type Unsupported struct{ Method string }

func (t *Unsupported) Name() string { return "select_" + t.Method }

func (t *Unsupported) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	switch t.Method {
	case "correlation", "mutual_info":
		p.Warn(ctx, p.Unsupported(t.Name(), "selectionMethod", t.Method))
	default:
		p.Warn(ctx, p.Unknown(t.Name(), "selectionMethod", t.Method))
	}
	return ds, nil
}
