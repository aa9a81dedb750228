package insight

import (
	"github.com/banshee-data/swing.report/internal/stats"
)

// SmashStat summarises smash factor values.
type SmashStat struct {
	N    int
	Mean float64
	CV   *float64
}

// NewSmashStat returns nil for an empty series.
func NewSmashStat(values []float64) *SmashStat {
	if len(values) == 0 {
		return nil
	}
	s := stats.Describe(values)
	return &SmashStat{N: s.N, Mean: *s.Mean, CV: s.CV}
}

// SmashInsight reads "Smash moyen 1.46 - CV 1.8%".
func SmashInsight(s *SmashStat) string {
	if s == nil {
		return ""
	}
	out := "Smash moyen " + num(s.Mean, 2)
	if s.CV != nil {
		out += " - CV " + num(100**s.CV, 1) + "%"
	}
	return out
}

// SmashCommentary rates consistency: très régulier below a CV of 0.02,
// plutôt régulier below 0.05, variable otherwise.
func SmashCommentary(s *SmashStat) string {
	switch {
	case s == nil || s.CV == nil:
		return "Pas assez de coups pour évaluer la qualité de contact."
	case *s.CV < 0.02:
		return "Contact très régulier d'un coup à l'autre."
	case *s.CV < 0.05:
		return "Contact plutôt régulier, quelques frappes moins centrées."
	default:
		return "Contact variable : l'efficacité de frappe change beaucoup entre les coups."
	}
}

// SmashTone is good from a mean of 1.45 inclusive, warn from 1.38, bad
// below.
func SmashTone(mean float64) Tone {
	switch {
	case mean >= 1.45:
		return Good
	case mean >= 1.38:
		return Warn
	default:
		return Bad
	}
}
