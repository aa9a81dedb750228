package units

import (
	"math"
	"strconv"
	"strings"
)

// FormatTickValue renders v for axis ticks and tables: no decimals at or
// above 100 in magnitude, one decimal below, a trailing ".0" dropped, and
// the unit appended after a space. Non-finite values render as "-".
func FormatTickValue(v float64, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	prec := 1
	if math.Abs(v) >= 100 {
		prec = 0
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	s = strings.TrimSuffix(s, ".0")
	if unit != "" {
		s += " " + unit
	}
	return s
}

// FormatPtr is FormatTickValue for optional values; nil renders as "-".
func FormatPtr(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return FormatTickValue(*v, unit)
}
