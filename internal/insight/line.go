package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/stats"
	"github.com/banshee-data/swing.report/internal/units"
)

// LineStat is the amplitude and mean of one series.
type LineStat struct {
	Name      string
	Unit      string
	N         int
	Amplitude float64
	Mean      float64
	// Trend is the fitted change across the whole series, nil below three
	// points.
	Trend *float64
}

// Ratio returns amplitude over |mean|, or false when the mean is zero.
func (s LineStat) Ratio() (float64, bool) {
	if s.Mean == 0 {
		return 0, false
	}
	return s.Amplitude / math.Abs(s.Mean), true
}

// NewLineStats computes the statistic of every series with at least two
// points.
func NewLineStats(p *charts.LinePayload) []LineStat {
	if p == nil {
		return nil
	}
	var out []LineStat
	for _, s := range p.Series {
		vals := s.Values()
		if len(vals) < 2 {
			continue
		}
		st := LineStat{Name: s.Name, Unit: s.Unit, N: len(vals), Mean: *stats.Mean(vals)}
		lo, hi := vals[0], vals[0]
		for _, v := range vals {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		st.Amplitude = hi - lo
		pos := make([]float64, len(vals))
		for i := range pos {
			pos[i] = float64(i)
		}
		if line := stats.LinearRegression(pos, vals); line != nil {
			change := line.Slope * float64(len(vals)-1)
			st.Trend = &change
		}
		out = append(out, st)
	}
	return out
}

// LineInsight reads "Vitesse balle : amplitude 6.2 mph, moyenne 132 mph"
// for each series.
func LineInsight(ls []LineStat) string {
	parts := make([]string, 0, len(ls))
	for _, s := range ls {
		parts = append(parts, fmt.Sprintf("%s : amplitude %s, moyenne %s",
			s.Name, units.FormatTickValue(s.Amplitude, s.Unit), units.FormatTickValue(s.Mean, s.Unit)))
	}
	return strings.Join(parts, " | ")
}

// LineCommentary judges the consistency of the first series and mentions a
// drift across the session when the fitted change exceeds 5% of the mean.
func LineCommentary(ls []LineStat) string {
	if len(ls) == 0 {
		return "Pas assez de coups pour suivre l'évolution."
	}
	s := ls[0]
	ratio, ok := s.Ratio()
	var out string
	switch {
	case !ok:
		out = fmt.Sprintf("%s : valeurs centrées sur zéro, amplitude %s.", s.Name, units.FormatTickValue(s.Amplitude, s.Unit))
	case ratio < 0.05:
		out = fmt.Sprintf("%s très constant tout au long de la séance.", s.Name)
	case ratio < 0.10:
		out = fmt.Sprintf("%s plutôt stable, quelques écarts d'un coup à l'autre.", s.Name)
	default:
		out = fmt.Sprintf("%s irrégulier : la répétabilité est à travailler.", s.Name)
	}
	if s.Trend != nil && ok && math.Abs(*s.Trend) > 0.05*math.Abs(s.Mean) {
		if *s.Trend > 0 {
			out += " Tendance à la hausse au fil des coups."
		} else {
			out += " Tendance à la baisse au fil des coups, signe possible de fatigue."
		}
	}
	return out
}

// LineTone grades amplitude over |mean| of the first series: below 5% good,
// below 10% warn, bad otherwise. Fewer than two points give warn.
func LineTone(ls []LineStat) Tone {
	if len(ls) == 0 {
		return Warn
	}
	ratio, ok := ls[0].Ratio()
	switch {
	case !ok:
		return Warn
	case ratio < 0.05:
		return Good
	case ratio < 0.10:
		return Warn
	default:
		return Bad
	}
}
