package scale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/stats"
)

func column(t *testing.T, ds p.Dataset, col string) []float64 {
	t.Helper()
	require.True(t, ds.AllNumber(col))
	return ds.Numbers(col)
}

func sample() p.Dataset {
	return p.Dataset{
		p.RecordOf("a", 1, "b", 7, "y", 10, "s", "x"),
		p.RecordOf("a", 2, "b", 7, "y", 20, "s", "y"),
		p.RecordOf("a", 3, "b", 7, "y", 30, "s", "z"),
		p.RecordOf("a", 6, "b", 7, "y", 40, "s", nil),
	}
}

func TestStandard(t *testing.T) {
	in := sample()
	out, err := (&Standard{Target: "y"}).Apply(context.Background(), in)
	require.NoError(t, err)

	mean, std := stats.MeanStd(column(t, out, "a"))
	assert.InDelta(t, 0, mean, 1e-9)
	assert.InDelta(t, 1, std, 1e-9)

	// constant column: divided by 1
	assert.Equal(t, []float64{0, 0, 0, 0}, column(t, out, "b"))
	assert.Equal(t, []float64{10, 20, 30, 40}, column(t, out, "y"))
	assert.Equal(t, []float64{1, 2, 3, 6}, column(t, in, "a"), "input mutated")
	assert.Equal(t, []string{"a", "b", "y", "s"}, out[0].Columns())
}

func TestMinMax(t *testing.T) {
	out, err := (&MinMax{Target: "y"}).Apply(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.2, 0.4, 1}, column(t, out, "a"))
	assert.Equal(t, []float64{0, 0, 0, 0}, column(t, out, "b"))
	assert.Equal(t, []float64{10, 20, 30, 40}, column(t, out, "y"))
}

func TestStandardThenMinMaxStaysInRange(t *testing.T) {
	ctx := context.Background()
	out, err := (&Standard{}).Apply(ctx, sample())
	require.NoError(t, err)
	out, err = (&MinMax{}).Apply(ctx, out)
	require.NoError(t, err)
	for _, c := range []string{"a", "b", "y"} {
		for _, f := range column(t, out, c) {
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 1.0)
		}
	}
}
