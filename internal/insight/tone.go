// Package insight turns chart payloads into French coaching text. Each
// chart kind has three independent functions: a numbers-first insight, a
// qualitative commentary and a good/warn/bad tone. The three share only the
// statistic computed upstream of them, and the thresholds below are product
// policy kept next to the metric they grade.
package insight

import (
	"fmt"
	"math"
	"strings"
)

// Tone grades a chart for display.
type Tone string

const (
	Good Tone = "good"
	Warn Tone = "warn"
	Bad  Tone = "bad"
)

// InsufficientData is the placeholder shown when a chart cannot be built.
const InsufficientData = "Données insuffisantes pour ce graphique."

// Text bundles the three outputs for one chart.
type Text struct {
	Insight    string `json:"insight"`
	Commentary string `json:"commentary"`
	Tone       Tone   `json:"tone"`
}

// pct formats a 0..100 share as a whole percentage.
func pct(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// num formats with fixed decimals using a decimal point regardless of locale.
func num(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	s := fmt.Sprintf("%.*f", decimals, v)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return s
}

// signed formats a delta with an explicit sign.
func signed(v float64, decimals int) string {
	s := num(v, decimals)
	if !strings.HasPrefix(s, "-") && strings.Trim(s, "0.") != "" {
		s = "+" + s
	}
	return s
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}
