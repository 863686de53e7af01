package selection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

func sample() p.Dataset {
	return p.Dataset{
		p.RecordOf("low", 1.0, "y", "a", "high", 1, "s", "x"),
		p.RecordOf("low", 1.1, "y", "b", "high", 5, "s", "x"),
		p.RecordOf("low", 1.2, "y", "a", "high", 9, "s", "x"),
	}
}

func TestVarianceKeepsHighVarianceFeatures(t *testing.T) {
	out, err := (&Variance{Target: "y", Threshold: DefaultThreshold}).Apply(context.Background(), sample())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"y", "high"}, out[0].Columns())
	s, _ := out[1].Value("y").Str()
	assert.Equal(t, "b", s)
}

func TestVarianceStrictThreshold(t *testing.T) {
	// population variance of {0, 1} is 0.25
	ds := p.Dataset{p.RecordOf("a", 0), p.RecordOf("a", 1)}
	out, err := (&Variance{Threshold: 0.25}).Apply(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 0, out[0].Len())
}

func TestVarianceWithoutTargetColumn(t *testing.T) {
	out, err := (&Variance{Target: "missing", Threshold: DefaultThreshold}).Apply(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, []string{"high"}, out[0].Columns())
}

func TestUnsupportedMethods(t *testing.T) {
	var got []p.Warning
	ctx := p.WithWarnings(context.Background(), func(w p.Warning) { got = append(got, w) })
	in := sample()
	for _, m := range []string{"correlation", "mutual_info", "chi2"} {
		out, err := (&Unsupported{Method: m}).Apply(ctx, in)
		require.NoError(t, err)
		assert.True(t, out.Equal(in))
	}
	assert.Len(t, got, 3)
}
