package insight

import (
	"fmt"
	"strings"

	"github.com/banshee-data/swing.report/internal/stats"
	"github.com/banshee-data/swing.report/internal/units"
)

// SessionFacts are the statistics a session narrative is built from. Any
// field may be nil when the session lacks the metric.
type SessionFacts struct {
	Club       string
	Shots      int
	Carry      *stats.Summary
	CarryUnit  string
	Dispersion *DispersionStat
	Smash      *SmashStat
	Impact     *float64
	Benchmark  *Comparison
}

// SessionNarrative assembles a short French summary of the session and ends
// with the area to work on first.
func SessionNarrative(f SessionFacts) string {
	if f.Shots == 0 {
		return "Aucun coup enregistré sur cette séance."
	}
	var b strings.Builder
	if f.Club != "" {
		fmt.Fprintf(&b, "Séance de %d coups (%s).", f.Shots, f.Club)
	} else {
		fmt.Fprintf(&b, "Séance de %d coups.", f.Shots)
	}
	if f.Carry != nil && f.Carry.Mean != nil {
		fmt.Fprintf(&b, " Carry moyen %s", units.FormatTickValue(*f.Carry.Mean, f.CarryUnit))
		if f.Carry.Std != nil {
			fmt.Fprintf(&b, " (ET %s)", units.FormatTickValue(*f.Carry.Std, f.CarryUnit))
		}
		b.WriteString(".")
	}
	if f.Dispersion != nil {
		b.WriteString(" " + DispersionCommentary(f.Dispersion))
	}
	if f.Smash != nil {
		fmt.Fprintf(&b, " Smash moyen %s. %s", num(f.Smash.Mean, 2), SmashCommentary(f.Smash))
	}
	if f.Impact != nil {
		b.WriteString(" " + ImpactCommentary(f.Impact))
	}
	if f.Benchmark != nil {
		if c := BenchmarkCommentary(f.Benchmark); c != "" {
			b.WriteString(" " + c)
		}
	}
	b.WriteString(" " + priority(f))
	return b.String()
}

func priority(f SessionFacts) string {
	switch {
	case f.Dispersion != nil && DispersionTone(f.Dispersion) == Bad:
		return "Priorité : la direction de départ."
	case f.Smash != nil && SmashTone(f.Smash.Mean) == Bad:
		return "Priorité : la qualité de contact."
	case f.Impact != nil && ImpactTone(f.Impact) == Bad:
		return "Priorité : centrer les impacts sur la face."
	case f.Dispersion != nil && DispersionTone(f.Dispersion) == Warn:
		return "Axe de progrès : resserrer la dispersion."
	default:
		return "Séance solide, à consolider."
	}
}

// Selected is one chart picked for the selection summary.
type Selected struct {
	Title   string
	Insight string
}

// SelectionSummary joins the insights of the selected charts, skipping
// those without one.
func SelectionSummary(items []Selected) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.Insight == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s : %s.", it.Title, it.Insight))
	}
	return strings.Join(parts, " ")
}
