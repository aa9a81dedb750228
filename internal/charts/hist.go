package charts

import (
	"encoding/json"
	"math"

	"github.com/banshee-data/swing.report/internal/units"
)

// Bin is one histogram bucket.
type Bin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DominantBin is the most populated bin and its share of all counts (0..1).
type DominantBin struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// HistPayload carries pre-binned counts.
type HistPayload struct {
	Annotations
	Title    string       `json:"title"`
	Unit     string       `json:"unit,omitempty"`
	Bins     []Bin        `json:"bins"`
	Total    int          `json:"total"`
	Dominant *DominantBin `json:"dominant"`
}

func (*HistPayload) Kind() Kind { return KindHist }

func (p HistPayload) MarshalJSON() ([]byte, error) {
	type alias HistPayload
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindHist, alias(p)})
}

// Dominant returns the first bin with the highest count and its share of the
// total. It is nil when there are no bins or every count is zero.
func Dominant(bins []Bin) *DominantBin {
	total := 0
	best := -1
	for i, b := range bins {
		total += b.Count
		if best < 0 || b.Count > bins[best].Count {
			best = i
		}
	}
	if best < 0 || total <= 0 {
		return nil
	}
	return &DominantBin{
		Label: bins[best].Label,
		Count: bins[best].Count,
		Share: float64(bins[best].Count) / float64(total),
	}
}

// BuildHist wraps bins computed upstream. It returns nil when there is
// nothing to count.
func BuildHist(title, unit string, bins []Bin) *HistPayload {
	dom := Dominant(bins)
	if dom == nil {
		return nil
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	return &HistPayload{
		Title:    title,
		Unit:     unit,
		Bins:     append([]Bin(nil), bins...),
		Total:    total,
		Dominant: dom,
	}
}

// MaxBins bounds the bins of BinValues.
const MaxBins = 50

// BinValues counts values into fixed-width bins aligned on multiples of
// width. When the range needs more than MaxBins bins the width grows by a
// whole factor until it fits. Non-finite values are ignored. Labels read
// "low-high".
func BinValues(values []float64, width float64) []Bin {
	if width <= 0 || math.IsInf(width, 0) || math.IsNaN(width) {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return nil
	}

	start := math.Floor(lo/width) * width
	nf := math.Floor((hi-start)/width) + 1
	for nf > MaxBins {
		width *= math.Ceil(nf / MaxBins)
		start = math.Floor(lo/width) * width
		nf = math.Floor((hi-start)/width) + 1
	}
	n := int(nf)

	bins := make([]Bin, n)
	for i := range bins {
		from := start + float64(i)*width
		bins[i].Label = units.FormatTickValue(from, "") + "-" + units.FormatTickValue(from+width, "")
	}
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		f := math.Min(math.Max(math.Floor((v-start)/width), 0), float64(n-1))
		bins[int(f)].Count++
	}
	return bins
}
