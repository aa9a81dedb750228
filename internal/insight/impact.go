package insight

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
)

// ImpactInsight reads "Distance moyenne au centre 0.23 (normalisée) - n = 14".
func ImpactInsight(p *charts.HeatmapPayload) string {
	if p == nil || p.MeanNormDistance == nil {
		return ""
	}
	return fmt.Sprintf("Distance moyenne au centre %s (normalisée) - n = %d", num(*p.MeanNormDistance, 2), len(p.Points))
}

// ImpactCommentary is centré below 0.2, légèrement décentré below 0.35 and
// décentré otherwise.
func ImpactCommentary(dist *float64) string {
	switch {
	case dist == nil:
		return "Pas de mesure d'impact sur la face."
	case *dist < 0.2:
		return "Impacts centrés sur la face."
	case *dist < 0.35:
		return "Impacts légèrement décentrés."
	default:
		return "Impacts décentrés : la qualité de contact coûte de la vitesse de balle."
	}
}

// ImpactTone is good below 0.25, warn below 0.4, bad otherwise.
func ImpactTone(dist *float64) Tone {
	switch {
	case dist == nil:
		return Warn
	case *dist < 0.25:
		return Good
	case *dist < 0.4:
		return Warn
	default:
		return Bad
	}
}
