package reduce

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

func TestComponents(t *testing.T) {
	assert.Equal(t, 2, Components(3, 50))
	assert.Equal(t, 7, Components(8, 95))
	assert.Equal(t, 2, Components(0, 95))
	assert.Equal(t, 10, Components(10, 100))
}

func TestProjectionValues(t *testing.T) {
	in := p.Dataset{
		p.RecordOf("a", 1, "b", 2, "label", "x", "y", 1),
		p.RecordOf("a", 3, "b", 4, "label", "z", "y", 0),
	}
	out, err := (&Projection{Target: "y", Variance: 50}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "PC1", "PC2"}, out[0].Columns())

	// n=2: w(0,0)=sin(pi/2)=1, w(0,1)=sin(pi)=~0, w(1,0)=sin(pi)=~0, w(1,1)=sin(2pi)=~0
	pc1, _ := out[0].Value("PC1").Float()
	pc2, _ := out[0].Value("PC2").Float()
	assert.InDelta(t, 1+2*math.Sin(math.Pi), pc1, 1e-12)
	assert.InDelta(t, 0, pc2, 1e-12)
	y, _ := out[1].Value("y").Float()
	assert.Equal(t, 0.0, y)
}

func TestProjectionFourFeaturesNinetyFivePercent(t *testing.T) {
	assert.Equal(t, 3, Components(4, 95))
	in := p.Dataset{
		p.RecordOf("a", 1, "b", 2, "c", 3, "d", 4, "city", "NY", "y", 1),
		p.RecordOf("a", 5, "b", 6, "c", 7, "d", 8, "city", "LA", "y", 0),
	}
	out, err := (&Projection{Target: "y", Variance: 95}).Apply(context.Background(), in)
	require.NoError(t, err)
	for _, r := range out {
		assert.ElementsMatch(t, []string{"y", "PC1", "PC2", "PC3"}, r.Columns())
	}

	var want float64
	for j, x := range []float64{1, 2, 3, 4} {
		want += x * math.Sin(float64(j+1)*math.Pi/4)
	}
	pc1, _ := out[0].Value("PC1").Float()
	assert.InDelta(t, want, pc1, 1e-12)
}

func TestProjectionWithoutFeatures(t *testing.T) {
	in := p.Dataset{p.RecordOf("label", "x"), p.RecordOf("label", "y")}
	out, err := (&Projection{Target: "target", Variance: 95}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"PC1", "PC2"}, out[0].Columns())
	f, _ := out[1].Value("PC2").Float()
	assert.Equal(t, 0.0, f)
}

func TestRetain(t *testing.T) {
	vars := []float64{6, 3, 1}
	assert.Equal(t, 1, Retain(vars, 50))
	assert.Equal(t, 1, Retain(vars, 60))
	assert.Equal(t, 2, Retain(vars, 90))
	assert.Equal(t, 3, Retain(vars, 95))
	assert.Equal(t, 1, Retain([]float64{0, 0}, 95))
	assert.Equal(t, 1, Retain(vars, 0))
}

func TestEigenCollapsesCollinearFeatures(t *testing.T) {
	var in p.Dataset
	for i := 0; i < 6; i++ {
		x := float64(i)
		in = append(in, p.RecordOf("a", x, "b", 2*x, "y", i%2))
	}
	out, err := (&Eigen{Target: "y", Variance: 95}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "PC1"}, out[0].Columns())

	// centered projection onto one axis: components sum to zero
	var sum float64
	for _, r := range out {
		f, _ := r.Value("PC1").Float()
		sum += f
	}
	assert.InDelta(t, 0, sum, 1e-9)
}

func TestEigenFallsBack(t *testing.T) {
	var got []p.Warning
	ctx := p.WithWarnings(context.Background(), func(w p.Warning) { got = append(got, w) })
	in := p.Dataset{p.RecordOf("a", 1, "b", 2)}
	out, err := (&Eigen{Variance: 95}).Apply(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"PC1", "PC2"}, out[0].Columns())
	require.Len(t, got, 1)
	assert.Equal(t, "pca.algorithm", got[0].Option)
}
