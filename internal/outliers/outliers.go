// Package outliers ranks and detects anomalous shots.
package outliers

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
)

// Flags maps a shot number, as a decimal string, to the reasons it was
// flagged.
type Flags map[string][]string

// Selection is a ranked set of shot numbers.
type Selection struct {
	Order []int
	set   map[int]bool
}

// Has reports whether shot is selected.
func (s Selection) Has(shot int) bool {
	return s.set[shot]
}

// Len returns the number of selected shots.
func (s Selection) Len() int { return len(s.Order) }

// MarshalJSON encodes the ranked shot numbers.
func (s Selection) MarshalJSON() ([]byte, error) {
	if s.Order == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Order)
}

// UnmarshalJSON reads the array written by MarshalJSON.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var order []int
	if err := json.Unmarshal(data, &order); err != nil {
		return err
	}
	if order == nil {
		order = []int{}
	}
	*s = NewSelection(order)
	return nil
}

// NewSelection builds a selection from ranked shot numbers.
func NewSelection(order []int) Selection {
	s := Selection{Order: order, set: make(map[int]bool, len(order))}
	for _, i := range order {
		s.set[i] = true
	}
	return s
}

// Top ranks flagged shots by number of reasons, most first, breaking ties by
// ascending shot number, and keeps the first n. Keys that are not positive
// integers are ignored.
func Top(flags Flags, n int) Selection {
	type ranked struct {
		shot  int
		count int
	}
	var all []ranked
	for k, reasons := range flags {
		shot, err := strconv.Atoi(k)
		if err != nil || shot < 1 || len(reasons) == 0 {
			continue
		}
		all = append(all, ranked{shot, len(reasons)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].shot < all[j].shot
	})
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	order := make([]int, len(all))
	for i, r := range all {
		order[i] = r.shot
	}
	return NewSelection(order)
}

// ZThreshold is the |z| above which a metric value is flagged.
const ZThreshold = 2.0

// DetectMetrics are the metrics screened by Detect.
var DetectMetrics = []columns.Metric{
	columns.ClubSpeed, columns.BallSpeed, columns.Smash, columns.Carry,
	columns.Lateral, columns.Spin, columns.LaunchAngle, columns.Height,
}

// Detect flags shots whose value on a screened metric lies more than
// ZThreshold population standard deviations from the session mean. Reasons
// read "<metric>:high" or "<metric>:low".
func Detect(rows []shots.Shot, r *columns.Resolved) Flags {
	flags := make(Flags)
	for _, m := range DetectMetrics {
		key := r.Key(m)
		if key == "" {
			continue
		}
		vals, idx := shots.Series(rows, key)
		if len(vals) < 3 {
			continue
		}
		sum := stats.Describe(vals)
		if sum.Std == nil || *sum.Std == 0 {
			continue
		}
		for i, v := range vals {
			z := (v - *sum.Mean) / *sum.Std
			if math.Abs(z) <= ZThreshold {
				continue
			}
			dir := "high"
			if z < 0 {
				dir = "low"
			}
			k := strconv.Itoa(idx[i])
			flags[k] = append(flags[k], fmt.Sprintf("%s:%s", m, dir))
		}
	}
	return flags
}
