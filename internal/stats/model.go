package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Predictor is a named explanatory series aligned with the model target.
type Predictor struct {
	Name   string
	Values []float64
}

// Coefficient is a standardized regression coefficient.
type Coefficient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ModelFit is the result of FitLinearModel.
type ModelFit struct {
	R2           float64       `json:"r2"`
	N            int           `json:"n"`
	Coefficients []Coefficient `json:"coefficients"`
}

// FitLinearModel fits target against predictors by ordinary least squares
// on z-scored series, so coefficients are comparable across units. It
// returns nil when there are fewer than len(predictors)+2 rows, the series
// are misaligned, or any series is constant.
func FitLinearModel(target []float64, predictors []Predictor) *ModelFit {
	n, p := len(target), len(predictors)
	if p == 0 || n < p+2 || Constant(target) {
		return nil
	}
	for _, pr := range predictors {
		if len(pr.Values) != n || Constant(pr.Values) {
			return nil
		}
	}

	x := mat.NewDense(n, p, nil)
	for j, pr := range predictors {
		z := zscore(pr.Values)
		for i, v := range z {
			x.Set(i, j, v)
		}
	}
	y := mat.NewVecDense(n, zscore(target))

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return nil
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		d := y.AtVec(i) - fitted.AtVec(i)
		ssRes += d * d
		ssTot += y.AtVec(i) * y.AtVec(i)
	}
	if ssTot == 0 {
		return nil
	}

	fit := &ModelFit{R2: math.Max(0, 1-ssRes/ssTot), N: n}
	for j, pr := range predictors {
		b := beta.AtVec(j)
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil
		}
		fit.Coefficients = append(fit.Coefficients, Coefficient{Name: pr.Name, Value: b})
	}
	return fit
}

func zscore(xs []float64) []float64 {
	mean, std := stat.PopMeanStdDev(xs, nil)
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = (v - mean) / std
	}
	return out
}
