package charts

import (
	"encoding/json"

	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
)

// Point is one plotted shot.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ShotIndex int     `json:"shotIndex"`
}

// ScatterPayload plots one metric against another with mean lines and a
// regression overlay.
type ScatterPayload struct {
	Annotations
	Title      string      `json:"title"`
	XLabel     string      `json:"xLabel"`
	YLabel     string      `json:"yLabel"`
	XUnit      string      `json:"xUnit,omitempty"`
	YUnit      string      `json:"yUnit,omitempty"`
	Points     []Point     `json:"points"`
	MeanX      *float64    `json:"meanX"`
	MeanY      *float64    `json:"meanY"`
	Regression *stats.Line `json:"regression"`
}

func (*ScatterPayload) Kind() Kind { return KindScatter }

func (p ScatterPayload) MarshalJSON() ([]byte, error) {
	type alias ScatterPayload
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindScatter, alias(p)})
}

// XY splits the points into coordinate series.
func (p *ScatterPayload) XY() (xs, ys []float64) {
	xs = make([]float64, len(p.Points))
	ys = make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	return xs, ys
}

// ScatterSpec selects the metrics of a scatter chart.
type ScatterSpec struct {
	Title string
	X     columns.Metric
	Y     columns.Metric
}

// BuildScatter keeps the shots where both metrics are finite. It returns nil
// when either metric is unresolved or no shot has both values.
func BuildScatter(rows []shots.Shot, r *columns.Resolved, spec ScatterSpec) *ScatterPayload {
	xKey, yKey := r.Key(spec.X), r.Key(spec.Y)
	if xKey == "" || yKey == "" {
		return nil
	}
	xs, ys, idx := shots.Pairs(rows, xKey, yKey)
	if len(xs) == 0 {
		return nil
	}
	p := &ScatterPayload{
		Title:      spec.Title,
		XLabel:     r.Label(spec.X),
		YLabel:     r.Label(spec.Y),
		XUnit:      r.Unit(spec.X),
		YUnit:      r.Unit(spec.Y),
		Points:     make([]Point, len(xs)),
		MeanX:      stats.Mean(xs),
		MeanY:      stats.Mean(ys),
		Regression: stats.LinearRegression(xs, ys),
	}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i], ShotIndex: idx[i]}
	}
	return p
}
