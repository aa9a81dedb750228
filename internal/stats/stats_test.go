package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{10, 20, 30})
	require.NotNil(t, s.Mean)
	require.NotNil(t, s.Std)
	assert.Equal(t, 3, s.N)
	assert.InDelta(t, 20, *s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(200.0/3.0), *s.Std, 1e-12)
	assert.InDelta(t, 8.165, *s.Std, 1e-3)
	assert.InDelta(t, *s.Std/20, *s.CV, 1e-12)
	assert.Equal(t, 10.0, *s.Min)
	assert.Equal(t, 30.0, *s.Max)
}

func TestDescribeEdgeCases(t *testing.T) {
	empty := Describe(nil)
	assert.Equal(t, 0, empty.N)
	assert.Nil(t, empty.Mean)
	assert.Nil(t, empty.Std)

	zeroMean := Describe([]float64{-1, 1})
	require.NotNil(t, zeroMean.Mean)
	assert.Equal(t, 0.0, *zeroMean.Mean)
	assert.Nil(t, zeroMean.CV, "cv is undefined for a zero mean")

	single := Describe([]float64{4})
	assert.Equal(t, 0.0, *single.Std)
}

func TestMeanStd(t *testing.T) {
	assert.Nil(t, Mean(nil))
	assert.Nil(t, Std(nil))
	assert.InDelta(t, 2.5, *Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), *Std([]float64{1, 2, 3, 4}), 1e-12)
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want *float64
	}{
		{"perfect positive", []float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}, ptr(1)},
		{"perfect negative", []float64{1, 2, 3, 4}, []float64{8, 6, 4, 2}, ptr(-1)},
		{"constant x", []float64{5, 5, 5}, []float64{1, 2, 3}, nil},
		{"constant y", []float64{1, 2, 3}, []float64{7, 7, 7}, nil},
		{"single pair", []float64{1}, []float64{2}, nil},
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pearson(tt.xs, tt.ys)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-12)
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestLinearRegression(t *testing.T) {
	line := LinearRegression([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.NotNil(t, line)
	assert.InDelta(t, 2, line.Slope, 1e-12)
	assert.InDelta(t, 1, line.Intercept, 1e-12)
	assert.InDelta(t, 21, line.At(10), 1e-9)

	assert.Nil(t, LinearRegression([]float64{1, 2}, []float64{1, 2}), "needs three points")
	assert.Nil(t, LinearRegression([]float64{3, 3, 3}, []float64{1, 2, 3}), "constant x")
}

func TestStrength(t *testing.T) {
	tests := []struct {
		r    float64
		want Band
	}{
		{0.1, Faible},
		{0.45, Moderee},
		{0.65, Marquee},
		{0.85, Forte},
		{-0.1, Faible},
		{-0.45, Moderee},
		{-0.65, Marquee},
		{-0.85, Forte},
		{0.2, Moderee},
		{0.5, Marquee},
		{0.7, Forte},
	}

	for _, tt := range tests {
		if got := Strength(tt.r); got != tt.want {
			t.Errorf("Strength(%v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "positive", Direction(0.3))
	assert.Equal(t, "négative", Direction(-0.3))
}

func TestConstant(t *testing.T) {
	assert.True(t, Constant(nil))
	assert.True(t, Constant([]float64{1}))
	assert.True(t, Constant([]float64{2, 2}))
	assert.False(t, Constant([]float64{2, 2.0001}))
}

func TestCorridors(t *testing.T) {
	c := Corridors([]float64{-2, 4, 5, -8, 12}, 5, 10)
	require.NotNil(t, c)
	assert.Equal(t, 5, c.N)
	assert.InDelta(t, 60, c.WithinLowPct, 1e-12)
	assert.InDelta(t, 80, c.WithinHighPct, 1e-12)
	assert.Nil(t, Corridors(nil, 5, 10))
}
