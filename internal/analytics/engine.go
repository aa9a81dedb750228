package analytics

import (
	"encoding/json"
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/insight"
	"github.com/banshee-data/swing.report/internal/outliers"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
)

// HighlightCount is the number of outlier shots highlighted per chart.
const HighlightCount = 3

// Input is everything a report is built from. Config is overlaid on the
// engine defaults; Analytics is synthesized from the rows when nil.
type Input struct {
	Columns   []shots.Column      `json:"columns"`
	Shots     []shots.Shot        `json:"shots"`
	Config    *config.RadarConfig `json:"config,omitempty"`
	Analytics *RadarAnalytics     `json:"analytics,omitempty"`
	Club      string              `json:"club,omitempty"`
}

// ChartResult is one rendered chart of a report.
type ChartResult struct {
	Key         string         `json:"key"`
	Title       string         `json:"title"`
	Kind        charts.Kind    `json:"kind"`
	Payload     charts.Payload `json:"payload"`
	Insight     string         `json:"insight"`
	Commentary  string         `json:"commentary"`
	Tone        insight.Tone   `json:"tone"`
	Highlights  []int          `json:"highlights"`
	Narrative   string         `json:"narrative,omitempty"`
	Precomputed bool           `json:"precomputed"`
}

// UnmarshalJSON restores the concrete payload type from its "type" field.
func (c *ChartResult) UnmarshalJSON(data []byte) error {
	type alias ChartResult
	var raw struct {
		alias
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ChartResult(raw.alias)
	c.Payload = nil
	if len(raw.Payload) == 0 || string(raw.Payload) == "null" {
		return nil
	}
	p, err := charts.Decode(raw.Payload)
	if err != nil {
		return fmt.Errorf("chart %s: %w", c.Key, err)
	}
	c.Payload = p
	return nil
}

// Report is the output of Engine.Build.
type Report struct {
	Meta             Meta                 `json:"meta"`
	Syntax           string               `json:"syntax"`
	Charts           []ChartResult        `json:"charts"`
	Summary          string               `json:"summary,omitempty"`
	SelectionSummary string               `json:"selectionSummary,omitempty"`
	Segments         []Segment            `json:"segments,omitempty"`
	Table            *charts.TablePayload `json:"table,omitempty"`
	Benchmark        *insight.Comparison  `json:"benchmark,omitempty"`
	Outliers         outliers.Selection   `json:"outliers"`
	Answers          map[string]string    `json:"answers,omitempty"`
}

// Chart returns the result for key.
func (r *Report) Chart(key string) (ChartResult, bool) {
	for _, c := range r.Charts {
		if c.Key == key {
			return c, true
		}
	}
	return ChartResult{}, false
}

// Engine builds reports. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	defaults *config.RadarConfig
}

// NewEngine returns an engine whose per-request configs are overlaid on
// defaults. A nil defaults uses the built-in defaults.
func NewEngine(defaults *config.RadarConfig) *Engine {
	if defaults == nil {
		defaults = config.DefaultRadarConfig()
	}
	return &Engine{defaults: config.Merge(defaults, nil)}
}

// Build computes every enabled chart with its text, then the session level
// summaries. Payloads found in the input analytics are used as given and
// their insight and notes are preferred over computed text.
func (e *Engine) Build(in Input) (*Report, error) {
	cfg := config.Merge(e.defaults, in.Config)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	settings := cfg.Resolve()

	r := columns.Resolve(in.Columns)
	a := in.Analytics
	if a == nil {
		a = Synthesize(in.Columns, in.Shots, cfg, in.Club)
	}
	flags := a.Outliers.Flags
	if flags == nil {
		flags = outliers.Detect(in.Shots, r)
	}
	club := in.Club
	if club == "" {
		club = a.Meta.Club
	}
	club = SessionClub(club, in.Shots, r)

	meta := a.Meta
	meta.Club = club
	meta.Shots = len(in.Shots)
	if meta.Locale == "" {
		meta.Locale = DefaultLocale
	}

	top := outliers.Top(flags, HighlightCount)
	src := source{rows: in.Shots, r: r, club: club}
	opts := insight.Options{Corridor: settings.LatCorridorMeters}

	rep := &Report{
		Meta:     meta,
		Syntax:   settings.AISyntax,
		Outliers: top,
		Answers:  settings.AIAnswers,
	}
	for _, c := range Catalogue {
		if !settings.Charts[c.Key] || (c.Key == config.ChartShotsTable && !settings.ShowTable) {
			continue
		}
		res := ChartResult{Key: c.Key, Title: c.Title, Kind: c.Kind, Highlights: []int{}}
		p, pre := a.Precomputed(c.Key)
		if !pre {
			p = c.build(src, c.Title)
		}
		res.Payload = p
		res.Precomputed = pre
		opts.Role = c.Role
		text := insight.Insufficient()
		if p != nil {
			res.Kind = p.Kind()
			text = insight.ForPayload(p, opts)
			if pre {
				ann := p.Annotation()
				if ann.Insight != "" {
					text.Insight = ann.Insight
				}
				if ann.Notes != "" {
					text.Commentary = ann.Notes
				}
			}
			res.Highlights = highlights(p, top)
		}
		res.Insight, res.Commentary, res.Tone = text.Insight, text.Commentary, text.Tone
		if settings.AINarrative == config.NarrativePerChart {
			res.Narrative = settings.AINarratives[c.Key]
		}
		rep.Charts = append(rep.Charts, res)
	}

	rep.Benchmark = insight.CompareToPGA(club, in.Shots, r)
	if settings.ShowSummary {
		rep.Summary = settings.AISessionSummary
		if rep.Summary == "" {
			rep.Summary = insight.SessionNarrative(e.facts(in.Shots, r, club, settings, rep.Benchmark))
		}
	}
	rep.SelectionSummary = settings.AISelectionSummary
	if rep.SelectionSummary == "" && len(settings.AISelectionKeys) > 0 {
		rep.SelectionSummary = selectionSummary(rep, settings.AISelectionKeys)
	}
	if settings.ShowSegments {
		rep.Segments = a.Segments
	}
	if settings.ShowTable {
		rep.Table = charts.BuildTable(in.Shots, r, "Tableau des coups")
	}
	return rep, nil
}

func (e *Engine) facts(rows []shots.Shot, r *columns.Resolved, club string, s config.Settings, bench *insight.Comparison) insight.SessionFacts {
	f := insight.SessionFacts{Club: club, Shots: len(rows), Benchmark: bench}
	if key := r.Key(columns.Carry); key != "" {
		if vals := shots.Numbers(rows, key); len(vals) > 0 {
			sum := stats.Describe(vals)
			f.Carry = &sum
			f.CarryUnit = r.Unit(columns.Carry)
		}
	}
	if lat := lateralMeters(rows, r); len(lat) > 0 {
		f.Dispersion = insight.LateralStat(lat, s.LatCorridorMeters)
	}
	vals, _ := charts.SmashSeries(rows, r)
	f.Smash = insight.NewSmashStat(vals)
	if hm := charts.BuildHeatmap(rows, r, "", club); hm != nil {
		f.Impact = hm.MeanNormDistance
	}
	return f
}

func selectionSummary(rep *Report, keys []string) string {
	var items []insight.Selected
	for _, k := range keys {
		if c, ok := rep.Chart(k); ok {
			items = append(items, insight.Selected{Title: c.Title, Insight: c.Insight})
		}
	}
	return insight.SelectionSummary(items)
}

// highlights keeps the selected outliers that appear in the payload, in
// rank order.
func highlights(p charts.Payload, top outliers.Selection) []int {
	present := ShotIndices(p)
	out := []int{}
	for _, i := range top.Order {
		if present[i] {
			out = append(out, i)
		}
	}
	return out
}

// ShotIndices returns the shot numbers drawn by a payload.
func ShotIndices(p charts.Payload) map[int]bool {
	out := make(map[int]bool)
	add := func(pts []charts.Point) {
		for _, pt := range pts {
			out[pt.ShotIndex] = true
		}
	}
	switch v := p.(type) {
	case *charts.ScatterPayload:
		add(v.Points)
	case *charts.HeatmapPayload:
		add(v.Points)
	case *charts.LinePayload:
		for _, s := range v.Series {
			for _, pt := range s.Points {
				out[pt.ShotIndex] = true
			}
		}
	case *charts.TablePayload:
		for _, row := range v.Rows {
			out[row.ShotIndex] = true
		}
	}
	return out
}
