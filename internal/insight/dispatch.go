package insight

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
)

// Role selects the domain specific text for a chart whose payload kind is
// shared with other charts.
type Role string

const (
	RoleGeneric    Role = ""
	RoleDispersion Role = "dispersion"
	RoleSmash      Role = "smash"
	RoleImpact     Role = "impact"
)

// Options parameterise ForPayload.
type Options struct {
	Role     Role
	Corridor [2]float64
}

// Insufficient is the text shown for a chart that could not be built.
func Insufficient() Text {
	return Text{Commentary: InsufficientData, Tone: Warn}
}

// ForPayload computes the insight, commentary and tone of p by dispatching
// on its kind.
func ForPayload(p charts.Payload, opts Options) Text {
	switch v := p.(type) {
	case *charts.ScatterPayload:
		if v == nil {
			break
		}
		if opts.Role == RoleDispersion {
			d := NewDispersionStat(v, opts.Corridor)
			return Text{DispersionInsight(d), DispersionCommentary(d), DispersionTone(d)}
		}
		s := NewScatterStat(v)
		return Text{ScatterInsight(s), ScatterCommentary(s, v.XLabel, v.YLabel), ScatterTone(s)}
	case *charts.LinePayload:
		if v == nil {
			break
		}
		if opts.Role == RoleSmash {
			var vals []float64
			if len(v.Series) > 0 {
				vals = v.Series[0].Values()
			}
			s := NewSmashStat(vals)
			tone := Warn
			if s != nil {
				tone = SmashTone(s.Mean)
			}
			return Text{SmashInsight(s), SmashCommentary(s), tone}
		}
		ls := NewLineStats(v)
		return Text{LineInsight(ls), LineCommentary(ls), LineTone(ls)}
	case *charts.HistPayload:
		if v == nil {
			break
		}
		d := HistStat(v)
		return Text{HistInsight(d, v.Unit), HistCommentary(d), HistTone(d)}
	case *charts.MatrixPayload:
		if v == nil {
			break
		}
		pair := v.Strongest()
		return Text{MatrixInsight(pair), MatrixCommentary(pair), MatrixTone(pair)}
	case *charts.ModelPayload:
		if v == nil {
			break
		}
		return Text{ModelInsight(v), ModelCommentary(v), ModelTone(v)}
	case *charts.HeatmapPayload:
		if v == nil {
			break
		}
		return Text{ImpactInsight(v), ImpactCommentary(v.MeanNormDistance), ImpactTone(v.MeanNormDistance)}
	case *charts.TablePayload:
		if v == nil {
			break
		}
		return Text{
			Insight:    fmt.Sprintf("%d coups - %d mesures", len(v.Rows), len(v.Columns)),
			Commentary: "Détail coup par coup de la séance.",
			Tone:       Good,
		}
	}
	return Insufficient()
}
