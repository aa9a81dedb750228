package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/charts"
)

// Default PNG size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var (
	shotColor    = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	flaggedColor = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	meanColor    = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	nanColor     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// PNG writes c as a PNG image. Zero sizes use the defaults.
func PNG(w io.Writer, c analytics.ChartResult, width, height vg.Length) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	p, err := plotFor(c)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render %s: %w", c.Key, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func plotFor(c analytics.ChartResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.Legend.Top = true

	var err error
	switch v := c.Payload.(type) {
	case nil:
		p.Title.Text = c.Title + "\n" + subtitle(c)
	case *charts.ScatterPayload:
		err = scatterPlot(p, v, c.Highlights)
	case *charts.LinePayload:
		err = linePlot(p, v)
	case *charts.HistPayload:
		err = histPlot(p, v)
	case *charts.ModelPayload:
		err = modelPlot(p, v)
	case *charts.MatrixPayload:
		err = matrixPlot(p, v)
	case *charts.HeatmapPayload:
		err = heatmapPlot(p, v)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, c.Payload.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("plot %s: %w", c.Key, err)
	}
	return p, nil
}

func scatterPlot(p *plot.Plot, sp *charts.ScatterPayload, highlights []int) error {
	p.X.Label.Text = axisName(sp.XLabel, sp.XUnit)
	p.Y.Label.Text = axisName(sp.YLabel, sp.YUnit)
	if len(sp.Points) == 0 {
		return nil
	}

	hl := make(map[int]bool, len(highlights))
	for _, i := range highlights {
		hl[i] = true
	}
	normal := make(plotter.XYs, 0, len(sp.Points))
	var flagged plotter.XYs
	for _, pt := range sp.Points {
		if hl[pt.ShotIndex] {
			flagged = append(flagged, plotter.XY{X: pt.X, Y: pt.Y})
		} else {
			normal = append(normal, plotter.XY{X: pt.X, Y: pt.Y})
		}
	}

	xs, ys := sp.XY()
	xlo, xhi := span(xs)
	ylo, yhi := span(ys)

	if sp.MeanX != nil {
		l, err := plotter.NewLine(plotter.XYs{{X: *sp.MeanX, Y: ylo}, {X: *sp.MeanX, Y: yhi}})
		if err != nil {
			return err
		}
		l.Color = meanColor
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(l)
	}
	if sp.MeanY != nil {
		l, err := plotter.NewLine(plotter.XYs{{X: xlo, Y: *sp.MeanY}, {X: xhi, Y: *sp.MeanY}})
		if err != nil {
			return err
		}
		l.Color = meanColor
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(l)
		p.Legend.Add("moyenne", l)
	}
	if sp.Regression != nil && xhi > xlo {
		reg := sp.Regression
		l, err := plotter.NewLine(plotter.XYs{{X: xlo, Y: reg.At(xlo)}, {X: xhi, Y: reg.At(xhi)}})
		if err != nil {
			return err
		}
		l.Color = flaggedColor
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add("régression", l)
	}

	if len(normal) > 0 {
		s, err := plotter.NewScatter(normal)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = shotColor
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add("coups", s)
	}
	if len(flagged) > 0 {
		s, err := plotter.NewScatter(flagged)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = flaggedColor
		s.GlyphStyle.Radius = vg.Points(4.5)
		p.Add(s)
		p.Legend.Add("atypiques", s)
	}
	return nil
}

func linePlot(p *plot.Plot, lp *charts.LinePayload) error {
	p.X.Label.Text = "Coup"
	colors := generateColors(len(lp.Series))
	for i, s := range lp.Series {
		if len(s.Points) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			pts[j] = plotter.XY{X: float64(pt.ShotIndex), Y: pt.Value}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = colors[i]
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(axisName(s.Name, s.Unit), l)
	}
	return nil
}

func histPlot(p *plot.Plot, hp *charts.HistPayload) error {
	if len(hp.Bins) == 0 {
		return nil
	}
	vals := make(plotter.Values, len(hp.Bins))
	labels := make([]string, len(hp.Bins))
	for i, b := range hp.Bins {
		vals[i] = float64(b.Count)
		labels[i] = b.Label
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(18))
	if err != nil {
		return err
	}
	bars.Color = shotColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Label.Text = hp.Unit
	p.Y.Label.Text = "Coups"
	return nil
}

func modelPlot(p *plot.Plot, mp *charts.ModelPayload) error {
	p.Title.Text = fmt.Sprintf("%s (R² %.2f, n=%d)", p.Title.Text, mp.R2, mp.N)
	if len(mp.Coefficients) == 0 {
		return nil
	}
	vals := make(plotter.Values, len(mp.Coefficients))
	names := make([]string, len(mp.Coefficients))
	for i, c := range mp.Coefficients {
		vals[i] = c.Value
		names[i] = c.Name
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = shotColor
	p.Add(bars, plotter.NewGrid())
	p.NominalX(names...)
	p.Y.Label.Text = "β standardisé"
	return nil
}

// grid adapts a [row][col] matrix to plotter.GridXYZ. NaN cells are drawn
// with the heat map's NaN colour.
type grid struct {
	z      [][]float64
	xs, ys []float64
}

func (g grid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g grid) Z(c, r int) float64 { return g.z[r][c] }
func (g grid) X(c int) float64    { return g.xs[c] }
func (g grid) Y(r int) float64    { return g.ys[r] }

func indexAxis(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func nominalTicks(labels []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

func matrixPlot(p *plot.Plot, mp *charts.MatrixPayload) error {
	n := len(mp.Variables)
	if n == 0 {
		return nil
	}
	z := make([][]float64, n)
	for i := range z {
		z[i] = make([]float64, n)
		for j := range z[i] {
			z[i][j] = math.NaN()
			if i < len(mp.Cells) && j < len(mp.Cells[i]) && mp.Cells[i][j] != nil {
				z[i][j] = *mp.Cells[i][j]
			}
		}
	}
	g := grid{z: z, xs: indexAxis(n), ys: indexAxis(n)}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(g, cm.Palette(11))
	hm.Min, hm.Max = -1, 1
	hm.NaN = nanColor
	p.Add(hm)
	p.X.Tick.Marker = nominalTicks(mp.Variables)
	p.Y.Tick.Marker = nominalTicks(mp.Variables)
	return nil
}

func heatmapPlot(p *plot.Plot, hp *charts.HeatmapPayload) error {
	p.X.Label.Text = "talon → pointe (in)"
	p.Y.Label.Text = "bas → haut (in)"
	if hp.Rows == 0 || hp.Cols == 0 || len(hp.Cells) != hp.Rows {
		return nil
	}
	xs := make([]float64, hp.Cols)
	for j := range xs {
		xs[j] = cellCentre(j, hp.Cols, hp.HalfWidth)
	}
	ys := make([]float64, hp.Rows)
	for i := range ys {
		ys[i] = cellCentre(i, hp.Rows, hp.HalfHeight)
	}
	hm := plotter.NewHeatMap(grid{z: hp.Cells, xs: xs, ys: ys}, palette.Heat(12, 1))
	hm.Min = 0
	if hp.Peak > 0 {
		hm.Max = hp.Peak
	} else {
		hm.Max = 1
	}
	p.Add(hm)

	if len(hp.Points) > 0 {
		pts := make(plotter.XYs, len(hp.Points))
		for i, pt := range hp.Points {
			pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = color.Black
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
	}
	return nil
}
