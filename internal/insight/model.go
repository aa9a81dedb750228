package insight

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
)

// ModelInsight reads "R² = 0.84 - n = 24 - facteur principal : Vitesse balle (+0.91)".
func ModelInsight(p *charts.ModelPayload) string {
	if p == nil {
		return ""
	}
	out := fmt.Sprintf("R² = %s - n = %d", num(p.R2, 2), p.N)
	if top := p.TopCoefficient(); top != nil {
		out += fmt.Sprintf(" - facteur principal : %s (%s)", top.Name, signed(top.Value, 2))
	}
	return out
}

// ModelCommentary says how much of the target the model explains.
func ModelCommentary(p *charts.ModelPayload) string {
	if p == nil {
		return "Pas assez de coups complets pour ajuster le modèle."
	}
	target := p.Target
	top := p.TopCoefficient()
	lead := ""
	if top != nil {
		lead = fmt.Sprintf(" %s est le levier principal.", top.Name)
	}
	switch {
	case p.R2 >= 0.7:
		return fmt.Sprintf("Le modèle explique l'essentiel des variations de %s.%s", target, lead)
	case p.R2 >= 0.4:
		return fmt.Sprintf("Le modèle explique une partie des variations de %s.%s", target, lead)
	default:
		return fmt.Sprintf("Les variations de %s dépendent surtout d'autres facteurs que ceux mesurés.", target)
	}
}

// ModelTone is good from R² 0.7, warn from 0.4, bad below.
func ModelTone(p *charts.ModelPayload) Tone {
	switch {
	case p == nil:
		return Warn
	case p.R2 >= 0.7:
		return Good
	case p.R2 >= 0.4:
		return Warn
	default:
		return Bad
	}
}
