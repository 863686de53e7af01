package reduce

import (
	"context"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// Eigen projects the centered features onto their leading principal axes,
// keeping the fewest components whose explained variance reaches
// Variance percent (at least one). When no decomposition is possible it
// falls back to Projection and warns.
type Eigen struct {
	Target   string
	Variance float64
}

func (t *Eigen) Name() string { return "reduce_eigen" }

func (t *Eigen) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	features := ds.NumericColumns(t.Target)
	rows, d := len(ds), len(features)
	if rows < 2 || d == 0 {
		return t.fallback(ctx, ds, "need at least two rows and one numeric feature")
	}

	x := mat.NewDense(rows, d, nil)
	for j, c := range features {
		for i, f := range ds.Numbers(c) {
			x.Set(i, j, f)
		}
	}
	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return t.fallback(ctx, ds, "decomposition failed")
	}
	vars := pc.VarsTo(nil)
	k := Retain(vars, t.Variance)

	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, x)
		mean := stat.Mean(col, nil)
		for i := range col {
			x.Set(i, j, col[i]-mean)
		}
	}
	var proj mat.Dense
	proj.Mul(x, vecs.Slice(0, d, 0, k))

	out := make(p.Dataset, rows)
	for r, rec := range ds {
		nr := withTarget(rec, t.Target)
		for i := 0; i < k; i++ {
			nr.Set(componentName(i), p.Number(proj.At(r, i)))
		}
		out[r] = nr
	}
	return out, nil
}

func (t *Eigen) fallback(ctx context.Context, ds p.Dataset, why string) (p.Dataset, error) {
	p.Warn(ctx, p.Warning{
		Stage:   t.Name(),
		Option:  "pca.algorithm",
		Value:   "eigen",
		Message: why + "; using the projection instead",
	})
	return (&Projection{Target: t.Target, Variance: t.Variance}).Apply(ctx, ds)
}

// Retain returns the smallest k whose leading variances cover percent of
// the total. It is at least 1 and at most len(vars).
func Retain(vars []float64, percent float64) int {
	var total float64
	for _, v := range vars {
		total += v
	}
	if total <= 0 || len(vars) == 0 {
		return 1
	}
	goal := percent / 100
	var cum float64
	for i, v := range vars {
		cum += v
		if cum/total >= goal {
			return i + 1
		}
	}
	return len(vars)
}
