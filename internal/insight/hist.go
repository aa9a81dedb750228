package insight

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
)

// HistStat returns the dominant bin of a histogram payload.
func HistStat(p *charts.HistPayload) *charts.DominantBin {
	if p == nil {
		return nil
	}
	return charts.Dominant(p.Bins)
}

// HistInsight reads "Classe dominante 140-145 m (50%)".
func HistInsight(d *charts.DominantBin, unit string) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("Classe dominante %s (%s)", withUnit(d.Label, unit), pct(100*d.Share))
}

// HistCommentary describes how concentrated the distribution is.
func HistCommentary(d *charts.DominantBin) string {
	switch {
	case d == nil:
		return "Pas assez de coups pour dessiner la distribution."
	case d.Share >= 0.5:
		return "Distribution concentrée : la majorité des coups tombe dans la même classe."
	case d.Share >= 0.3:
		return "Distribution assez groupée autour d'une classe principale."
	default:
		return "Distribution étalée : pas de distance de référence nette."
	}
}

// HistTone is good when the dominant bin holds at least 50% of the shots,
// warn from 30%, bad below.
func HistTone(d *charts.DominantBin) Tone {
	switch {
	case d == nil:
		return Warn
	case d.Share >= 0.5:
		return Good
	case d.Share >= 0.3:
		return Warn
	default:
		return Bad
	}
}
