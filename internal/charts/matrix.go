package charts

import (
	"encoding/json"
	"math"

	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
)

// MatrixPayload is a square correlation matrix. Cells[i][j] is nil when the
// pair is degenerate.
type MatrixPayload struct {
	Annotations
	Title     string       `json:"title"`
	Variables []string     `json:"variables"`
	Cells     [][]*float64 `json:"cells"`
}

func (*MatrixPayload) Kind() Kind { return KindMatrix }

func (p MatrixPayload) MarshalJSON() ([]byte, error) {
	type alias MatrixPayload
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindMatrix, alias(p)})
}

// Pair is an off-diagonal matrix cell.
type Pair struct {
	A string
	B string
	R float64
}

// Strongest returns the off-diagonal cell with the largest |r|, scanning in
// row-major order and keeping the first one found on ties.
func (p *MatrixPayload) Strongest() *Pair {
	var best *Pair
	for i, row := range p.Cells {
		for j, c := range row {
			if i == j || c == nil || i >= len(p.Variables) || j >= len(p.Variables) {
				continue
			}
			if best == nil || math.Abs(*c) > math.Abs(best.R) {
				best = &Pair{A: p.Variables[i], B: p.Variables[j], R: *c}
			}
		}
	}
	return best
}

// BuildMatrix correlates every pair of resolved metrics over the shots where
// both are finite. It needs at least two resolved metrics.
func BuildMatrix(rows []shots.Shot, r *columns.Resolved, title string, metrics ...columns.Metric) *MatrixPayload {
	var keys []string
	p := &MatrixPayload{Title: title}
	for _, m := range metrics {
		if k := r.Key(m); k != "" {
			keys = append(keys, k)
			p.Variables = append(p.Variables, r.Label(m))
		}
	}
	if len(keys) < 2 {
		return nil
	}
	p.Cells = make([][]*float64, len(keys))
	for i := range keys {
		p.Cells[i] = make([]*float64, len(keys))
	}
	for i := range keys {
		for j := i; j < len(keys); j++ {
			xs, ys, _ := shots.Pairs(rows, keys[i], keys[j])
			rv := stats.Pearson(xs, ys)
			p.Cells[i][j] = rv
			p.Cells[j][i] = rv
		}
	}
	if p.Strongest() == nil {
		return nil
	}
	return p
}
