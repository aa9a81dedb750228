// Package stats provides the descriptive statistics, correlation and
// regression primitives behind every chart and insight. All functions
// return nil instead of NaN or Inf for degenerate input.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one numeric series. Std is the population standard
// deviation and CV is Std/|Mean|.
type Summary struct {
	N    int      `json:"n"`
	Mean *float64 `json:"mean"`
	Std  *float64 `json:"std"`
	CV   *float64 `json:"cv"`
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Describe summarises xs. Callers pass finite values only.
func Describe(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	mean, std := stat.PopMeanStdDev(xs, nil)
	s.Mean = finite(mean)
	s.Std = finite(std)
	if mean != 0 {
		s.CV = finite(std / math.Abs(mean))
	}
	s.Min = finite(floats.Min(xs))
	s.Max = finite(floats.Max(xs))
	return s
}

// Mean returns the arithmetic mean of xs, or nil when xs is empty.
func Mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	return finite(stat.Mean(xs, nil))
}

// Std returns the population standard deviation of xs.
func Std(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	return finite(stat.PopStdDev(xs, nil))
}

// Constant reports whether xs holds fewer than two distinct values.
func Constant(xs []float64) bool {
	for _, v := range xs[min(1, len(xs)):] {
		if v != xs[0] {
			return false
		}
	}
	return true
}

// Pearson returns the correlation coefficient of the paired series. It is
// nil when fewer than two pairs are given or either series is constant.
func Pearson(xs, ys []float64) *float64 {
	if len(xs) < 2 || len(xs) != len(ys) || Constant(xs) || Constant(ys) {
		return nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	r = math.Max(-1, math.Min(1, r))
	return &r
}

// Line is a least squares fit y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// LinearRegression fits ys against xs. It needs at least three pairs and
// a non-constant x series.
func LinearRegression(xs, ys []float64) *Line {
	if len(xs) < 3 || len(xs) != len(ys) || Constant(xs) {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if finite(alpha) == nil || finite(beta) == nil {
		return nil
	}
	return &Line{Slope: beta, Intercept: alpha}
}

// Band is a qualitative correlation strength.
type Band string

const (
	Faible  Band = "faible"
	Moderee Band = "modérée"
	Marquee Band = "marquée"
	Forte   Band = "forte"
)

// Strength bands |r|: below 0.2 faible, below 0.5 modérée, below 0.7
// marquée, forte otherwise. The sign of r never changes the band.
func Strength(r float64) Band {
	a := math.Abs(r)
	switch {
	case a < 0.2:
		return Faible
	case a < 0.5:
		return Moderee
	case a < 0.7:
		return Marquee
	default:
		return Forte
	}
}

// Direction returns "positive" or "négative" for the sign of r.
func Direction(r float64) string {
	if r < 0 {
		return "négative"
	}
	return "positive"
}
