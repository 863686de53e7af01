// Package reduce shrinks the feature space of a dataset. The default
// Projection is a fixed trigonometric mixing of the features; Eigen is a
// true principal component analysis and must be asked for explicitly.
package reduce

import (
	"context"
	"fmt"
	"math"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// Components returns the number of components the projection emits for
// featureCount features: max(2, floor(featureCount*variance/100)).
func Components(featureCount int, variance float64) int {
	k := int(math.Floor(float64(featureCount) * variance / 100))
	if k < 2 {
		k = 2
	}
	return k
}

// Weight is the projection coefficient of feature j in component i.
func Weight(i, j, featureCount int) float64 {
	return math.Sin(float64((i+1)*(j+1)) * math.Pi / float64(featureCount))
}

// Projection replaces all numeric features with PC1..PCk. The target is
// carried over when a record has it; all other columns are dropped.
type Projection struct {
	Target   string
	Variance float64
}

func (t *Projection) Name() string { return "reduce_projection" }

func (t *Projection) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	features := ds.NumericColumns(t.Target)
	n := len(features)
	k := Components(n, t.Variance)
	weights := make([][]float64, k)
	for i := range weights {
		weights[i] = make([]float64, n)
		for j := range weights[i] {
			weights[i][j] = Weight(i, j, n)
		}
	}
	out := make(p.Dataset, len(ds))
	for r, rec := range ds {
		nr := withTarget(rec, t.Target)
		for i := 0; i < k; i++ {
			var sum float64
			for j, c := range features {
				f, _ := rec.Value(c).Float()
				sum += f * weights[i][j]
			}
			nr.Set(componentName(i), p.Number(sum))
		}
		out[r] = nr
	}
	return out, nil
}

func withTarget(r p.Record, target string) p.Record {
	nr := p.NewRecord()
	if v, ok := r.Get(target); ok {
		nr.Set(target, v)
	}
	return nr
}

func componentName(i int) string { return fmt.Sprintf("PC%d", i+1) }
