package insight

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/stats"
)

// MatrixInsight reads "Lien le plus fort : Vitesse balle / Carry (r = 0.91, forte)".
func MatrixInsight(pair *charts.Pair) string {
	if pair == nil {
		return ""
	}
	return fmt.Sprintf("Lien le plus fort : %s / %s (r = %s, %s)", pair.A, pair.B, num(pair.R, 2), stats.Strength(pair.R))
}

// MatrixCommentary explains the strongest pair.
func MatrixCommentary(pair *charts.Pair) string {
	if pair == nil {
		return "Pas assez de variables exploitables pour croiser les mesures."
	}
	switch stats.Strength(pair.R) {
	case stats.Forte:
		return fmt.Sprintf("%s et %s évoluent ensemble : agir sur l'un se verra sur l'autre.", pair.A, pair.B)
	case stats.Marquee, stats.Moderee:
		return fmt.Sprintf("%s et %s sont liés, mais sans dépendance stricte.", pair.A, pair.B)
	default:
		return "Les mesures varient indépendamment les unes des autres sur cette séance."
	}
}

// MatrixTone is good for a forte pair, warn for marquée or modérée and bad
// for faible.
func MatrixTone(pair *charts.Pair) Tone {
	if pair == nil {
		return Warn
	}
	switch stats.Strength(pair.R) {
	case stats.Forte:
		return Good
	case stats.Marquee, stats.Moderee:
		return Warn
	default:
		return Bad
	}
}
