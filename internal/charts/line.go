package charts

import (
	"encoding/json"

	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/units"
)

// SeriesPoint is a value aligned with the shot it came from.
type SeriesPoint struct {
	ShotIndex int     `json:"shotIndex"`
	Value     float64 `json:"value"`
}

// Series is one named line. Smooth is set when the series has enough points
// for a curved path.
type Series struct {
	Name   string        `json:"name"`
	Unit   string        `json:"unit,omitempty"`
	Points []SeriesPoint `json:"points"`
	Smooth bool          `json:"smooth"`
}

// Values returns the series values in shot order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// LinePayload plots one or more metrics in shot order.
type LinePayload struct {
	Annotations
	Title  string   `json:"title"`
	Series []Series `json:"series"`
}

func (*LinePayload) Kind() Kind { return KindLine }

func (p LinePayload) MarshalJSON() ([]byte, error) {
	type alias LinePayload
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindLine, alias(p)})
}

// NewSeries aligns values with their shot numbers.
func NewSeries(name, unit string, values []float64, indices []int) Series {
	s := Series{Name: name, Unit: unit, Points: make([]SeriesPoint, len(values))}
	for i := range values {
		s.Points[i] = SeriesPoint{ShotIndex: indices[i], Value: values[i]}
	}
	s.Smooth = len(s.Points) >= 3
	return s
}

// BuildLine assembles a line chart from prepared series, dropping empty
// ones. It returns nil when no series has a point.
func BuildLine(title string, series ...Series) *LinePayload {
	p := &LinePayload{Title: title}
	for _, s := range series {
		if len(s.Points) > 0 {
			p.Series = append(p.Series, s)
		}
	}
	if len(p.Series) == 0 {
		return nil
	}
	return p
}

// BuildMetricLine draws one series per resolved metric.
func BuildMetricLine(rows []shots.Shot, r *columns.Resolved, title string, metrics ...columns.Metric) *LinePayload {
	var series []Series
	for _, m := range metrics {
		key := r.Key(m)
		if key == "" {
			continue
		}
		vals, idx := shots.Series(rows, key)
		series = append(series, NewSeries(r.Label(m), r.Unit(m), vals, idx))
	}
	return BuildLine(title, series...)
}

// SmashSeries returns smash factor values in shot order. A smash column is
// used when resolved; otherwise smash is derived per shot as ball speed over
// club speed after converting both to mph.
func SmashSeries(rows []shots.Shot, r *columns.Resolved) (values []float64, indices []int) {
	if key := r.Key(columns.Smash); key != "" {
		return shots.Series(rows, key)
	}
	ballKey, clubKey := r.Key(columns.BallSpeed), r.Key(columns.ClubSpeed)
	if ballKey == "" || clubKey == "" {
		return nil, nil
	}
	ballUnit, clubUnit := r.Unit(columns.BallSpeed), r.Unit(columns.ClubSpeed)
	nums := shots.Numbering(rows)
	for i, s := range rows {
		b, okB := s.Float(ballKey)
		c, okC := s.Float(clubKey)
		if !okB || !okC {
			continue
		}
		bm, cm := *units.ToMph(&b, ballUnit), *units.ToMph(&c, clubUnit)
		if cm <= 0 {
			continue
		}
		values = append(values, bm/cm)
		indices = append(indices, nums[i])
	}
	return values, indices
}
