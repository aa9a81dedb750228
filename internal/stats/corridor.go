package stats

import "math"

// Corridor is the share of shots whose lateral offset stays within two
// tolerances. Percentages are 0..100.
type Corridor struct {
	Low           float64 `json:"low"`
	High          float64 `json:"high"`
	WithinLowPct  float64 `json:"withinLowPct"`
	WithinHighPct float64 `json:"withinHighPct"`
	N             int     `json:"n"`
}

// Corridors counts the offsets with |v| <= low and |v| <= high. It returns
// nil for an empty series.
func Corridors(offsets []float64, low, high float64) *Corridor {
	if len(offsets) == 0 {
		return nil
	}
	var inLow, inHigh int
	for _, v := range offsets {
		a := math.Abs(v)
		if a <= low {
			inLow++
		}
		if a <= high {
			inHigh++
		}
	}
	n := float64(len(offsets))
	return &Corridor{
		Low:           low,
		High:          high,
		WithinLowPct:  100 * float64(inLow) / n,
		WithinHighPct: 100 * float64(inHigh) / n,
		N:             len(offsets),
	}
}
