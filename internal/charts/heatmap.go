package charts

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/banshee-data/swing.report/internal/clubs"
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/units"
)

// HeatmapCols is the horizontal resolution of the face impact grid.
const HeatmapCols = 40

// saturation is the share of the smoothed peak at which the ramp reaches red.
const saturation = 0.75

var kernel = [3][3]float64{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

type rgb struct{ r, g, b float64 }

var (
	rampGreen  = rgb{34, 197, 94}
	rampYellow = rgb{234, 179, 8}
	rampRed    = rgb{239, 68, 68}
)

// HeatmapPayload is a smoothed face impact density. Cells and Colors are
// indexed [row][col] with row 0 at the bottom of the face and col 0 at the
// heel. Points are impact offsets in inches, positive x towards the toe.
type HeatmapPayload struct {
	Annotations
	Title            string      `json:"title"`
	Club             string      `json:"club,omitempty"`
	HalfWidth        float64     `json:"halfWidth"`
	HalfHeight       float64     `json:"halfHeight"`
	Cols             int         `json:"cols"`
	Rows             int         `json:"rows"`
	Cells            [][]float64 `json:"cells"`
	Colors           [][]string  `json:"colors"`
	Peak             float64     `json:"peak"`
	Points           []Point     `json:"points"`
	MeanNormDistance *float64    `json:"meanNormDistance"`
}

func (*HeatmapPayload) Kind() Kind { return KindHeatmap }

func (p HeatmapPayload) MarshalJSON() ([]byte, error) {
	type alias HeatmapPayload
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindHeatmap, alias(p)})
}

// HeatmapRows returns the grid height that keeps cells square for head.
func HeatmapRows(head clubs.Head) int {
	return int(math.Round(HeatmapCols * head.HalfHeight / head.HalfWidth))
}

// BuildHeatmap bins face impacts into a clubhead sized grid, smooths the
// counts and colours each cell. It returns nil when no shot has both
// impact offsets.
func BuildHeatmap(rows []shots.Shot, r *columns.Resolved, title, club string) *HeatmapPayload {
	xKey, yKey := r.Key(columns.ImpactX), r.Key(columns.ImpactY)
	if xKey == "" || yKey == "" {
		return nil
	}
	xs, ys, idx := shots.Pairs(rows, xKey, yKey)
	if len(xs) == 0 {
		return nil
	}

	head := clubs.HeadFor(club)
	nc, nr := HeatmapCols, HeatmapRows(head)
	p := &HeatmapPayload{
		Title:      title,
		Club:       club,
		HalfWidth:  head.HalfWidth,
		HalfHeight: head.HalfHeight,
		Cols:       nc,
		Rows:       nr,
		Points:     make([]Point, len(xs)),
	}

	counts := grid(nr, nc)
	var distSum float64
	for i := range xs {
		x := *units.ToInches(&xs[i], r.Unit(columns.ImpactX))
		y := *units.ToInches(&ys[i], r.Unit(columns.ImpactY))
		p.Points[i] = Point{X: x, Y: y, ShotIndex: idx[i]}
		distSum += math.Hypot(x/head.HalfWidth, y/head.HalfHeight)

		c := cellIndex(x, head.HalfWidth, nc)
		row := cellIndex(y, head.HalfHeight, nr)
		counts[row][c]++
	}
	mean := distSum / float64(len(xs))
	p.MeanNormDistance = &mean

	p.Cells = smooth(counts)
	for _, row := range p.Cells {
		for _, v := range row {
			p.Peak = math.Max(p.Peak, v)
		}
	}
	p.Colors = make([][]string, nr)
	for i, row := range p.Cells {
		p.Colors[i] = make([]string, nc)
		for j, v := range row {
			p.Colors[i][j] = RampColor(v, p.Peak)
		}
	}
	return p
}

func grid(rows, cols int) [][]float64 {
	g := make([][]float64, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}

// cellIndex maps an offset in [-half, half] to one of n cells, clamping
// impacts off the face to the edge cells.
func cellIndex(v, half float64, n int) int {
	f := math.Floor((v + half) / (2 * half) * float64(n))
	return int(math.Min(math.Max(f, 0), float64(n-1)))
}

// smooth convolves g with the 3x3 kernel. Cells outside the grid count as
// zero.
func smooth(g [][]float64) [][]float64 {
	rows := len(g)
	if rows == 0 {
		return nil
	}
	cols := len(g[0])
	out := grid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var acc float64
			for di := -1; di <= 1; di++ {
				for dj := -1; dj <= 1; dj++ {
					ii, jj := i+di, j+dj
					if ii < 0 || ii >= rows || jj < 0 || jj >= cols {
						continue
					}
					acc += g[ii][jj] * kernel[di+1][dj+1]
				}
			}
			out[i][j] = acc / 16
		}
	}
	return out
}

// RampColor maps a smoothed density to a hex colour on the green, yellow,
// red ramp. Density is eased with a square root and saturates at 75% of the
// peak. Empty cells return "".
func RampColor(v, peak float64) string {
	if v <= 0 || peak <= 0 {
		return ""
	}
	t := math.Sqrt(math.Min(1, v/(saturation*peak)))
	var c rgb
	if t < 0.5 {
		c = lerp(rampGreen, rampYellow, t*2)
	} else {
		c = lerp(rampYellow, rampRed, (t-0.5)*2)
	}
	return fmt.Sprintf("#%02x%02x%02x", uint8(math.Round(c.r)), uint8(math.Round(c.g)), uint8(math.Round(c.b)))
}

func lerp(a, b rgb, t float64) rgb {
	return rgb{
		r: a.r + (b.r-a.r)*t,
		g: a.g + (b.g-a.g)*t,
		b: a.b + (b.b-a.b)*t,
	}
}
