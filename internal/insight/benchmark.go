package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/clubs"
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
	"github.com/banshee-data/swing.report/internal/units"
)

// Benchmark is a PGA Tour average for one club. Speeds are mph, distances
// and apex height are yards, angles degrees and spin rpm.
type Benchmark struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	ClubSpeed float64 `json:"clubSpeed"`
	BallSpeed float64 `json:"ballSpeed"`
	Smash     float64 `json:"smash"`
	Launch    float64 `json:"launch"`
	Spin      float64 `json:"spin"`
	Height    float64 `json:"height"`
	Descent   float64 `json:"descent"`
	Carry     float64 `json:"carry"`
}

// PGATour holds the benchmark table keyed by clubs.BenchmarkKey.
var PGATour = map[string]Benchmark{
	clubs.Driver: {clubs.Driver, "Driver", 113, 167, 1.48, 10.9, 2686, 32, 38, 275},
	clubs.Wood3:  {clubs.Wood3, "Bois 3", 107, 158, 1.48, 9.2, 3655, 30, 43, 243},
	clubs.Wood5:  {clubs.Wood5, "Bois 5", 103, 152, 1.47, 9.4, 4350, 31, 47, 230},
	clubs.Hybrid: {clubs.Hybrid, "Hybride", 100, 146, 1.46, 10.2, 4437, 29, 47, 225},
	clubs.Iron3:  {clubs.Iron3, "Fer 3", 98, 142, 1.45, 10.4, 4630, 27, 46, 212},
	clubs.Iron4:  {clubs.Iron4, "Fer 4", 96, 137, 1.43, 11.0, 4836, 28, 48, 203},
	clubs.Iron5:  {clubs.Iron5, "Fer 5", 94, 132, 1.41, 12.1, 5361, 31, 49, 194},
	clubs.Iron6:  {clubs.Iron6, "Fer 6", 92, 127, 1.38, 14.1, 6231, 30, 50, 183},
	clubs.Iron7:  {clubs.Iron7, "Fer 7", 90, 120, 1.33, 16.3, 7097, 32, 50, 172},
	clubs.Iron8:  {clubs.Iron8, "Fer 8", 87, 115, 1.32, 18.1, 7998, 31, 50, 160},
	clubs.Iron9:  {clubs.Iron9, "Fer 9", 85, 109, 1.28, 20.4, 8647, 30, 51, 148},
	clubs.PW:     {clubs.PW, "Pitching wedge", 83, 102, 1.23, 24.2, 9304, 29, 52, 136},
}

// LookupBenchmark returns the benchmark for a free-text club name.
func LookupBenchmark(club string) (Benchmark, bool) {
	b, ok := PGATour[clubs.BenchmarkKey(club)]
	return b, ok
}

// Delta compares a session mean with the benchmark in benchmark units.
type Delta struct {
	Metric    string  `json:"metric"`
	Label     string  `json:"label"`
	Unit      string  `json:"unit,omitempty"`
	Session   float64 `json:"session"`
	Benchmark float64 `json:"benchmark"`
	Delta     float64 `json:"delta"`
}

// Comparison is the full benchmark comparison of a session.
type Comparison struct {
	Club      string    `json:"club"`
	Benchmark Benchmark `json:"benchmark"`
	Deltas    []Delta   `json:"deltas"`
}

type benchmarkField struct {
	metric  columns.Metric
	label   string
	unit    string
	value   func(Benchmark) float64
	convert func(*float64, string) *float64
}

func passthrough(v *float64, _ string) *float64 { return v }

var benchmarkFields = []benchmarkField{
	{columns.ClubSpeed, "Vitesse club", units.MPH, func(b Benchmark) float64 { return b.ClubSpeed }, units.ToMph},
	{columns.BallSpeed, "Vitesse balle", units.MPH, func(b Benchmark) float64 { return b.BallSpeed }, units.ToMph},
	{columns.Smash, "Smash", "", func(b Benchmark) float64 { return b.Smash }, passthrough},
	{columns.Carry, "Carry", units.Yards, func(b Benchmark) float64 { return b.Carry }, units.ToYards},
	{columns.Spin, "Spin", "rpm", func(b Benchmark) float64 { return b.Spin }, passthrough},
	{columns.LaunchAngle, "Angle de lancement", "°", func(b Benchmark) float64 { return b.Launch }, passthrough},
	{columns.Height, "Hauteur", units.Yards, func(b Benchmark) float64 { return b.Height }, units.ToYards},
	{columns.DescentAngle, "Angle de descente", "°", func(b Benchmark) float64 { return b.Descent }, passthrough},
}

// CompareToPGA converts session means to benchmark units and returns signed
// deltas (session minus benchmark). Smash falls back to ball over club
// speed when no smash column exists. It returns nil when the club has no
// benchmark or no metric can be compared.
func CompareToPGA(club string, rows []shots.Shot, r *columns.Resolved) *Comparison {
	b, ok := LookupBenchmark(club)
	if !ok {
		return nil
	}
	cmp := &Comparison{Club: club, Benchmark: b}
	for _, f := range benchmarkFields {
		var vals []float64
		if f.metric == columns.Smash {
			vals, _ = charts.SmashSeries(rows, r)
		} else if key := r.Key(f.metric); key != "" {
			vals = shots.Numbers(rows, key)
		}
		mean := f.convert(stats.Mean(vals), r.Unit(f.metric))
		if mean == nil {
			continue
		}
		ref := f.value(b)
		cmp.Deltas = append(cmp.Deltas, Delta{
			Metric:    string(f.metric),
			Label:     f.label,
			Unit:      f.unit,
			Session:   *mean,
			Benchmark: ref,
			Delta:     *mean - ref,
		})
	}
	if len(cmp.Deltas) == 0 {
		return nil
	}
	return cmp
}

// Delta returns the delta for metric.
func (c *Comparison) Delta(m columns.Metric) (Delta, bool) {
	if c == nil {
		return Delta{}, false
	}
	for _, d := range c.Deltas {
		if d.Metric == string(m) {
			return d, true
		}
	}
	return Delta{}, false
}

// BenchmarkInsight lists the deltas: "Vitesse club -8.2 mph | Carry -21 yd".
func BenchmarkInsight(c *Comparison) string {
	if c == nil {
		return ""
	}
	parts := make([]string, 0, len(c.Deltas))
	for _, d := range c.Deltas {
		dec := 1
		if d.Metric == string(columns.Smash) {
			dec = 2
		} else if math.Abs(d.Delta) >= 100 {
			dec = 0
		}
		parts = append(parts, d.Label+" "+withUnit(signed(d.Delta, dec), d.Unit))
	}
	return strings.Join(parts, " | ")
}

// BenchmarkCommentary points at the largest relative gap with the tour.
func BenchmarkCommentary(c *Comparison) string {
	if c == nil {
		return "Pas de référence PGA pour ce club."
	}
	var worst *Delta
	var worstRel float64
	for i := range c.Deltas {
		d := &c.Deltas[i]
		if d.Benchmark == 0 {
			continue
		}
		rel := d.Delta / d.Benchmark
		if worst == nil || math.Abs(rel) > math.Abs(worstRel) {
			worst, worstRel = d, rel
		}
	}
	if worst == nil {
		return ""
	}
	if math.Abs(worstRel) < 0.05 {
		return fmt.Sprintf("Valeurs proches de la moyenne PGA au %s.", c.Benchmark.Label)
	}
	way := "en dessous de"
	if worstRel > 0 {
		way = "au-dessus de"
	}
	return fmt.Sprintf("Plus grand écart : %s, %s %s la moyenne PGA au %s.",
		strings.ToLower(worst.Label), pct(100*math.Abs(worstRel)), way, c.Benchmark.Label)
}
