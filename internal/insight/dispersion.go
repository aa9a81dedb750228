package insight

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/stats"
	"github.com/banshee-data/swing.report/internal/units"
)

// DispersionStat is the lateral spread of a session in meters.
type DispersionStat struct {
	Std      float64
	Corridor stats.Corridor
}

// NewDispersionStat reads lateral offsets from the x axis of a dispersion
// scatter, converts them to meters and measures the corridor shares.
func NewDispersionStat(p *charts.ScatterPayload, corridor [2]float64) *DispersionStat {
	if p == nil || len(p.Points) == 0 {
		return nil
	}
	lat := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		lat[i] = *units.ToMeters(&pt.X, p.XUnit)
	}
	return LateralStat(lat, corridor)
}

// LateralStat measures meter offsets against the corridor tolerances.
func LateralStat(lateralMeters []float64, corridor [2]float64) *DispersionStat {
	c := stats.Corridors(lateralMeters, corridor[0], corridor[1])
	if c == nil {
		return nil
	}
	return &DispersionStat{Std: *stats.Std(lateralMeters), Corridor: *c}
}

// DispersionInsight reads "ET 5.2 m - 72% dans 10 m".
func DispersionInsight(d *DispersionStat) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("ET %s - %s dans %s",
		units.FormatTickValue(d.Std, units.Meters),
		pct(d.Corridor.WithinHighPct),
		units.FormatTickValue(d.Corridor.High, units.Meters))
}

// DispersionCommentary is serrée from 70% of shots inside the wide
// corridor, modérée from 50%, large below.
func DispersionCommentary(d *DispersionStat) string {
	switch {
	case d == nil:
		return "Pas de mesure latérale exploitable."
	case d.Corridor.WithinHighPct >= 70:
		return fmt.Sprintf("Dispersion serrée : %s des coups restent dans un couloir de %s.",
			pct(d.Corridor.WithinHighPct), units.FormatTickValue(d.Corridor.High, units.Meters))
	case d.Corridor.WithinHighPct >= 50:
		return fmt.Sprintf("Dispersion modérée : un coup sur deux environ sort du couloir de %s.",
			units.FormatTickValue(d.Corridor.Low, units.Meters))
	default:
		return "Dispersion large : priorité au contrôle de la direction de départ."
	}
}

// DispersionTone is good from 60% inside the wide corridor, warn from 40%,
// bad below.
func DispersionTone(d *DispersionStat) Tone {
	switch {
	case d == nil:
		return Warn
	case d.Corridor.WithinHighPct >= 60:
		return Good
	case d.Corridor.WithinHighPct >= 40:
		return Warn
	default:
		return Bad
	}
}
