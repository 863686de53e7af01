package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanStdIsPopulation(t *testing.T) {
	m, s := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, m)
	assert.InDelta(t, 2.0, s, 1e-12)
	assert.InDelta(t, 4.0, Variance([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 0.0, Median(nil))
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Median(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{3, -1, 7})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)
	lo, hi = MinMax(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestQuartiles(t *testing.T) {
	q1, q3 := Quartiles([]float64{1, 2, 3, 4, 5, 6, 7, 100})
	assert.Equal(t, 3.0, q1)
	assert.Equal(t, 7.0, q3)
}

func TestEmptyInputs(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.Zero(t, Variance(nil))
	m, s := MeanStd(nil)
	assert.Zero(t, m)
	assert.Zero(t, s)
}
