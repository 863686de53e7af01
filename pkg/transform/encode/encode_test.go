package encode

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

func cities() p.Dataset {
	return p.Dataset{
		p.RecordOf("age", 25, "city", "NY", "y", "yes"),
		p.RecordOf("age", 30, "city", "LA", "y", "no"),
		p.RecordOf("age", 35, "city", "NY", "y", "yes"),
		p.RecordOf("age", 40, "city", nil, "y", "no"),
	}
}

func num(t *testing.T, r p.Record, col string) float64 {
	t.Helper()
	f, ok := r.Value(col).Float()
	require.True(t, ok, "column %s is %s", col, r.Value(col).Kind())
	return f
}

func TestOneHot(t *testing.T) {
	in := cities()
	out, err := (&OneHot{Target: "y"}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "y", "city_NY", "city_LA", "city_null"}, out[0].Columns())
	assert.Equal(t, 1.0, num(t, out[0], "city_NY"))
	assert.Equal(t, 0.0, num(t, out[0], "city_LA"))
	assert.Equal(t, 1.0, num(t, out[3], "city_null"))
	for _, r := range out {
		sum := num(t, r, "city_NY") + num(t, r, "city_LA") + num(t, r, "city_null")
		assert.Equal(t, 1.0, sum)
	}
	assert.True(t, in[0].Has("city"), "input mutated")
}

func TestOneHotMixedKinds(t *testing.T) {
	ds := p.Dataset{p.RecordOf("c", "a"), p.RecordOf("c", 2), p.RecordOf("c", true)}
	out, err := (&OneHot{}).Apply(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"c_a", "c_2", "c_true"}, out[0].Columns())
}

func TestLabel(t *testing.T) {
	out, err := (&Label{Target: "y"}).Apply(context.Background(), cities())
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "city", "y"}, out[0].Columns())
	got := make([]float64, len(out))
	for i, r := range out {
		got[i] = num(t, r, "city")
	}
	assert.Equal(t, []float64{0, 1, 0, 2}, got)
	s, _ := out[0].Value("y").Str()
	assert.Equal(t, "yes", s)
}

func TestNoCategoricalColumns(t *testing.T) {
	in := p.Dataset{p.RecordOf("a", 1, "b", true)}
	out, err := (&OneHot{}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Equal(in))
	out, err = (&Label{}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Equal(in))
}

func TestDistinctFollowsValueEquality(t *testing.T) {
	ds := p.Dataset{
		p.RecordOf("c", "1"),
		p.RecordOf("c", 1),
		p.RecordOf("c", 0.0),
		p.RecordOf("c", math.Copysign(0, -1)),
		p.RecordOf("c", math.NaN()),
		p.RecordOf("c", math.NaN()),
		p.RecordOf("c", "1"),
		p.RecordOf("c", nil),
	}
	lv := distinct(ds, "c")
	require.Len(t, lv.values, 5)
	assert.Equal(t, p.KindText, lv.values[0].Kind())
	assert.Equal(t, p.KindNumber, lv.values[1].Kind())
	assert.Equal(t, 2, lv.code(p.Number(math.Copysign(0, -1))))
	assert.Equal(t, 3, lv.code(p.Number(math.NaN())))
	assert.Equal(t, 4, lv.code(p.Absent()))
}

func TestLabelHighCardinality(t *testing.T) {
	const n = 20000
	ds := make(p.Dataset, n)
	for i := range ds {
		ds[i] = p.RecordOf("id", fmt.Sprintf("user-%d", i%(n/2)))
	}
	out, err := (&Label{}).Apply(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, float64(n/2-1), num(t, out[n/2-1], "id"))
	assert.Equal(t, 0.0, num(t, out[n/2], "id"))
}
