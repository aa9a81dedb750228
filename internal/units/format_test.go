package units

import (
	"math"
	"testing"
)

func TestFormatTickValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  string
		want  string
	}{
		{"large value no decimals", 152.4, "m", "152 m"},
		{"small value one decimal", 12.34, "m", "12.3 m"},
		{"trailing zero stripped", 12.0, "", "12"},
		{"negative", -4.56, "°", "-4.6 °"},
		{"exactly 100", 100.0, "mph", "100 mph"},
		{"just below 100", 99.94, "", "99.9"},
		{"no unit", 1.48, "", "1.5"},
		{"nan", math.NaN(), "m", "-"},
		{"inf", math.Inf(1), "", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTickValue(tt.value, tt.unit); got != tt.want {
				t.Errorf("FormatTickValue(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestFormatPtr(t *testing.T) {
	if got := FormatPtr(nil, "m"); got != "-" {
		t.Errorf("FormatPtr(nil) = %q", got)
	}
	v := 3.0
	if got := FormatPtr(&v, "yd"); got != "3 yd" {
		t.Errorf("FormatPtr(3.0) = %q", got)
	}
}
