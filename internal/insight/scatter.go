package insight

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/stats"
	"github.com/banshee-data/swing.report/internal/units"
)

// MinScatterPoints is the number of shots needed before a correlation is
// reported.
const MinScatterPoints = 6

// ScatterStat is the correlation behind scatter text.
type ScatterStat struct {
	N     int
	R     *float64
	Slope *float64
}

// NewScatterStat computes the correlation of a scatter payload. R stays nil
// below MinScatterPoints or for degenerate series.
func NewScatterStat(p *charts.ScatterPayload) ScatterStat {
	if p == nil {
		return ScatterStat{}
	}
	s := ScatterStat{N: len(p.Points)}
	if s.N < MinScatterPoints {
		return s
	}
	xs, ys := p.XY()
	s.R = stats.Pearson(xs, ys)
	if line := stats.LinearRegression(xs, ys); line != nil {
		s.Slope = &line.Slope
	}
	return s
}

// ScatterInsight reads "r = 0.82 (forte, positive) - pente 1.4 - n = 18".
func ScatterInsight(s ScatterStat) string {
	if s.R == nil {
		return ""
	}
	r := *s.R
	out := fmt.Sprintf("r = %s (%s, %s)", num(r, 2), stats.Strength(r), stats.Direction(r))
	if s.Slope != nil {
		out += " - pente " + units.FormatTickValue(*s.Slope, "")
	}
	return out + fmt.Sprintf(" - n = %d", s.N)
}

// ScatterCommentary describes the relation between the two axes.
func ScatterCommentary(s ScatterStat, xLabel, yLabel string) string {
	if s.N < MinScatterPoints {
		return fmt.Sprintf("Pas assez de coups (%d) pour juger le lien entre %s et %s.", s.N, xLabel, yLabel)
	}
	if s.R == nil {
		return fmt.Sprintf("Aucune variation exploitable entre %s et %s.", xLabel, yLabel)
	}
	r := *s.R
	way := "augmente"
	if r < 0 {
		way = "diminue"
	}
	switch stats.Strength(r) {
	case stats.Forte:
		return fmt.Sprintf("Lien très net : quand %s monte, %s %s presque systématiquement.", xLabel, yLabel, way)
	case stats.Marquee:
		return fmt.Sprintf("Lien marqué : %s %s généralement avec %s.", yLabel, way, xLabel)
	case stats.Moderee:
		return fmt.Sprintf("Lien modéré entre %s et %s, d'autres facteurs comptent.", xLabel, yLabel)
	default:
		return fmt.Sprintf("Pas de lien clair entre %s et %s sur cette séance.", xLabel, yLabel)
	}
}

// ScatterTone is good for forte or marquée correlations, warn for modérée
// and bad for faible. Too few points or a degenerate series give warn.
func ScatterTone(s ScatterStat) Tone {
	if s.R == nil {
		return Warn
	}
	switch stats.Strength(*s.R) {
	case stats.Forte, stats.Marquee:
		return Good
	case stats.Moderee:
		return Warn
	default:
		return Bad
	}
}
