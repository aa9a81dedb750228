// Package render draws report charts as go-echarts HTML pages and
// gonum/plot PNG images.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/insight"
)

// ErrUnsupported is returned for payload kinds a renderer cannot draw.
var ErrUnsupported = errors.New("render: unsupported chart kind")

// Options controls HTML page rendering.
type Options struct {
	// AssetsHost overrides where the echarts scripts are loaded from.
	AssetsHost string
	Width      string
	Height     string
}

func (o Options) init(title string) opts.Initialization {
	init := opts.Initialization{PageTitle: title, Width: "900px", Height: "600px", AssetsHost: o.AssetsHost}
	if o.Width != "" {
		init.Width = o.Width
	}
	if o.Height != "" {
		init.Height = o.Height
	}
	return init
}

var correlationRamp = []string{"#2563eb", "#93c5fd", "#f5f5f5", "#fca5a5", "#dc2626"}
var densityRamp = []string{"#f5f5f5", "#22c55e", "#eab308", "#ef4444"}

// HTML writes c as a standalone page. Charts without a payload render as an
// empty chart titled with the insufficient data message. Tables have no
// echarts equivalent and are written as a plain HTML table.
func HTML(w io.Writer, c analytics.ChartResult, o Options) error {
	if tp, ok := c.Payload.(*charts.TablePayload); ok && tp != nil {
		return tableHTML(w, c.Title, tp)
	}

	chart, err := echartsFor(c, o)
	if err != nil {
		return err
	}

	page := components.NewPage()
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}
	page.SetPageTitle(c.Title)
	page.AddCharts(chart)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", c.Key, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func subtitle(c analytics.ChartResult) string {
	if c.Payload == nil {
		return insight.InsufficientData
	}
	if c.Insight != "" {
		return c.Insight
	}
	return c.Commentary
}

func globals(c analytics.ChartResult, o Options) []echarts.GlobalOpts {
	return []echarts.GlobalOpts{
		echarts.WithInitializationOpts(o.init(c.Title)),
		echarts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: subtitle(c)}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func echartsFor(c analytics.ChartResult, o Options) (components.Charter, error) {
	g := globals(c, o)
	switch p := c.Payload.(type) {
	case nil:
		bar := echarts.NewBar()
		bar.SetGlobalOptions(g...)
		return bar, nil
	case *charts.ScatterPayload:
		return scatterHTML(p, c.Highlights, g), nil
	case *charts.LinePayload:
		return lineHTML(p, g), nil
	case *charts.HistPayload:
		return histHTML(p, g), nil
	case *charts.MatrixPayload:
		return matrixHTML(p, g), nil
	case *charts.ModelPayload:
		return modelHTML(p, g), nil
	case *charts.HeatmapPayload:
		return heatmapHTML(p, g), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, c.Payload.Kind())
}

func axisName(label, unit string) string {
	if unit == "" {
		return label
	}
	return label + " (" + unit + ")"
}

func shotLabel(i int) string { return "#" + strconv.Itoa(i) }

func scatterHTML(p *charts.ScatterPayload, highlights []int, g []echarts.GlobalOpts) *echarts.Scatter {
	hl := make(map[int]bool, len(highlights))
	for _, i := range highlights {
		hl[i] = true
	}
	var normal, flagged []opts.ScatterData
	for _, pt := range p.Points {
		d := opts.ScatterData{Name: shotLabel(pt.ShotIndex), Value: []interface{}{pt.X, pt.Y}}
		if hl[pt.ShotIndex] {
			flagged = append(flagged, d)
		} else {
			normal = append(normal, d)
		}
	}

	sc := echarts.NewScatter()
	sc.SetGlobalOptions(append(g,
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		echarts.WithXAxisOpts(opts.XAxis{Type: "value", Min: "dataMin", Name: axisName(p.XLabel, p.XUnit), NameLocation: "middle", NameGap: 25}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "value", Min: "dataMin", Name: axisName(p.YLabel, p.YUnit), NameLocation: "middle", NameGap: 40}),
	)...)

	var marks []echarts.SeriesOpts
	if p.MeanX != nil {
		marks = append(marks, echarts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{Name: "moyenne", XAxis: *p.MeanX}))
	}
	if p.MeanY != nil {
		marks = append(marks, echarts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "moyenne", YAxis: *p.MeanY}))
	}
	if p.Regression != nil && len(p.Points) > 1 {
		xs, _ := p.XY()
		lo, hi := span(xs)
		marks = append(marks, echarts.WithMarkLineNameCoordItemOpts(opts.MarkLineNameCoordItem{
			Name:        "régression",
			Coordinate0: []interface{}{lo, p.Regression.At(lo)},
			Coordinate1: []interface{}{hi, p.Regression.At(hi)},
		}))
	}
	marks = append(marks, echarts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 9}))
	sc.AddSeries("coups", normal, marks...)
	if len(flagged) > 0 {
		sc.AddSeries("atypiques", flagged,
			echarts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 13}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: "#ef4444"}),
		)
	}
	return sc
}

func span(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// lineAxis is the union of shot indices across series, in order.
func lineAxis(p *charts.LinePayload) []int {
	seen := map[int]bool{}
	var idx []int
	for _, s := range p.Series {
		for _, pt := range s.Points {
			if !seen[pt.ShotIndex] {
				seen[pt.ShotIndex] = true
				idx = append(idx, pt.ShotIndex)
			}
		}
	}
	sort.Ints(idx)
	return idx
}

func lineHTML(p *charts.LinePayload, g []echarts.GlobalOpts) *echarts.Line {
	idx := lineAxis(p)
	x := make([]string, len(idx))
	pos := make(map[int]int, len(idx))
	for i, s := range idx {
		x[i] = shotLabel(s)
		pos[s] = i
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(append(g,
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "value", Min: "dataMin"}),
	)...)
	line.SetXAxis(x)
	for _, s := range p.Series {
		data := make([]opts.LineData, len(idx))
		for i := range data {
			data[i] = opts.LineData{Value: "-"}
		}
		for _, pt := range s.Points {
			data[pos[pt.ShotIndex]] = opts.LineData{Value: pt.Value}
		}
		line.AddSeries(axisName(s.Name, s.Unit), data,
			echarts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(s.Smooth), ConnectNulls: opts.Bool(true)}),
		)
	}
	return line
}

func histHTML(p *charts.HistPayload, g []echarts.GlobalOpts) *echarts.Bar {
	x := make([]string, len(p.Bins))
	y := make([]opts.BarData, len(p.Bins))
	for i, b := range p.Bins {
		x[i] = b.Label
		y[i] = opts.BarData{Value: b.Count}
	}
	bar := echarts.NewBar()
	bar.SetGlobalOptions(append(g,
		echarts.WithXAxisOpts(opts.XAxis{Name: p.Unit}),
	)...)
	bar.SetXAxis(x).AddSeries("coups", y,
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

func modelHTML(p *charts.ModelPayload, g []echarts.GlobalOpts) *echarts.Bar {
	x := make([]string, len(p.Coefficients))
	y := make([]opts.BarData, len(p.Coefficients))
	for i, c := range p.Coefficients {
		x[i] = c.Name
		y[i] = opts.BarData{Value: round3(c.Value)}
	}
	bar := echarts.NewBar()
	bar.SetGlobalOptions(append(g,
		echarts.WithYAxisOpts(opts.YAxis{Name: "β standardisé"}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)...)
	bar.SetXAxis(x).AddSeries(fmt.Sprintf("%s (R² %.2f, n=%d)", p.Target, p.R2, p.N), y,
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

func matrixHTML(p *charts.MatrixPayload, g []echarts.GlobalOpts) *echarts.HeatMap {
	var data []opts.HeatMapData
	for i, row := range p.Cells {
		for j, v := range row {
			var val interface{} = "-"
			if v != nil {
				val = round3(*v)
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, val}})
		}
	}
	hm := echarts.NewHeatMap()
	hm.SetGlobalOptions(append(g,
		echarts.WithXAxisOpts(opts.XAxis{Type: "category", Data: p.Variables}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "category", Data: p.Variables}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: correlationRamp},
		}),
	)...)
	hm.SetXAxis(p.Variables).AddSeries("r", data,
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return hm
}

func heatmapHTML(p *charts.HeatmapPayload, g []echarts.GlobalOpts) *echarts.HeatMap {
	x := make([]string, p.Cols)
	for j := range x {
		x[j] = strconv.FormatFloat(cellCentre(j, p.Cols, p.HalfWidth), 'f', 2, 64)
	}
	y := make([]string, p.Rows)
	for i := range y {
		y[i] = strconv.FormatFloat(cellCentre(i, p.Rows, p.HalfHeight), 'f', 2, 64)
	}
	var data []opts.HeatMapData
	for i, row := range p.Cells {
		for j, v := range row {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, round3(v)}})
		}
	}
	peak := p.Peak
	if peak <= 0 {
		peak = 1
	}
	hm := echarts.NewHeatMap()
	hm.SetGlobalOptions(append(g,
		echarts.WithXAxisOpts(opts.XAxis{Type: "category", Data: x, Name: "talon → pointe (in)", NameLocation: "middle", NameGap: 25}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "category", Data: y, Name: "bas → haut (in)", NameLocation: "middle", NameGap: 40}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(peak),
			InRange:    &opts.VisualMapInRange{Color: densityRamp},
		}),
	)...)
	hm.SetXAxis(x).AddSeries("densité", data)
	return hm
}

// cellCentre maps cell i of n across [-half, half].
func cellCentre(i, n int, half float64) float64 {
	if n <= 0 {
		return 0
	}
	w := 2 * half / float64(n)
	return -half + w*(float64(i)+0.5)
}
