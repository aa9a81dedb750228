package charts

import (
	"encoding/json"
	"math"

	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
)

// ModelPayload is a fitted linear model with standardized coefficients.
type ModelPayload struct {
	Annotations
	Title        string              `json:"title"`
	Name         string              `json:"name"`
	Target       string              `json:"target"`
	R2           float64             `json:"r2"`
	N            int                 `json:"n"`
	Coefficients []stats.Coefficient `json:"coefficients"`
}

func (*ModelPayload) Kind() Kind { return KindModel }

func (p ModelPayload) MarshalJSON() ([]byte, error) {
	type alias ModelPayload
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindModel, alias(p)})
}

// TopCoefficient returns the coefficient with the largest magnitude, the
// first one on ties.
func (p *ModelPayload) TopCoefficient() *stats.Coefficient {
	var best *stats.Coefficient
	for i := range p.Coefficients {
		c := &p.Coefficients[i]
		if best == nil || math.Abs(c.Value) > math.Abs(best.Value) {
			best = c
		}
	}
	return best
}

// ModelSpec names a model and its variables.
type ModelSpec struct {
	Title      string
	Name       string
	Target     columns.Metric
	Predictors []columns.Metric
}

// BuildModel fits the target against the resolved predictors over the
// shots where every variable is finite. Unresolved predictors are skipped.
func BuildModel(rows []shots.Shot, r *columns.Resolved, spec ModelSpec) *ModelPayload {
	target := r.Key(spec.Target)
	if target == "" {
		return nil
	}
	var keys, names []string
	for _, m := range spec.Predictors {
		if k := r.Key(m); k != "" {
			keys = append(keys, k)
			names = append(names, r.Label(m))
		}
	}
	if len(keys) == 0 {
		return nil
	}

	var y []float64
	xs := make([][]float64, len(keys))
	for _, s := range rows {
		tv, ok := s.Float(target)
		if !ok {
			continue
		}
		row := make([]float64, len(keys))
		complete := true
		for j, k := range keys {
			if row[j], ok = s.Float(k); !ok {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		y = append(y, tv)
		for j := range keys {
			xs[j] = append(xs[j], row[j])
		}
	}

	preds := make([]stats.Predictor, len(keys))
	for j := range keys {
		preds[j] = stats.Predictor{Name: names[j], Values: xs[j]}
	}
	fit := stats.FitLinearModel(y, preds)
	if fit == nil {
		return nil
	}
	return &ModelPayload{
		Title:        spec.Title,
		Name:         spec.Name,
		Target:       r.Label(spec.Target),
		R2:           fit.R2,
		N:            fit.N,
		Coefficients: fit.Coefficients,
	}
}
