// Package clubs recognises club names from free-text exports.
package clubs

import (
	"regexp"
	"strings"

	"github.com/banshee-data/swing.report/internal/units"
)

// Head holds clubhead face half-dimensions in inches.
type Head struct {
	HalfWidth  float64
	HalfHeight float64
}

var (
	DriverHead = Head{HalfWidth: 5.0, HalfHeight: 2.5}
	IronHead   = Head{HalfWidth: 3.35, HalfHeight: 2.2}
)

var driverTokens = []string{"driver", "1w", "w1", "bois 1", "wood 1"}

// IsDriver reports whether name designates a driver.
func IsDriver(name string) bool {
	n := units.NormalizeToken(name)
	if n == "" {
		return false
	}
	for _, tok := range driverTokens {
		if strings.Contains(n, tok) {
			return true
		}
	}
	return false
}

// HeadFor returns the clubhead used to normalise face impacts for name.
func HeadFor(name string) Head {
	if IsDriver(name) {
		return DriverHead
	}
	return IronHead
}

// Benchmark keys.
const (
	Driver = "driver"
	Wood3  = "3w"
	Wood5  = "5w"
	Hybrid = "hybrid"
	Iron3  = "3i"
	Iron4  = "4i"
	Iron5  = "5i"
	Iron6  = "6i"
	Iron7  = "7i"
	Iron8  = "8i"
	Iron9  = "9i"
	PW     = "pw"
)

var (
	woodPattern = regexp.MustCompile(`^(?:([35])\s*w|w\s*([35])|(?:bois|wood|fairway)\s*([35])|([35])\s*(?:bois|wood))$`)
	ironPattern = regexp.MustCompile(`^(?:([3-9])\s*i|i\s*([3-9])|(?:fer|iron)\s*([3-9])|([3-9])\s*(?:fer|iron))$`)
)

// BenchmarkKey maps a free-text club name to a benchmark table key, or ""
// when the club is not covered.
func BenchmarkKey(name string) string {
	n := units.NormalizeToken(name)
	switch {
	case n == "":
		return ""
	case IsDriver(n):
		return Driver
	case strings.Contains(n, "hybrid") || strings.Contains(n, "hybride") || strings.Contains(n, "rescue"):
		return Hybrid
	case n == "pw" || n == "p" || strings.Contains(n, "pitching") || n == "wedge p" || n == "pw wedge":
		return PW
	}
	if m := woodPattern.FindStringSubmatch(n); m != nil {
		return firstGroup(m) + "w"
	}
	if m := ironPattern.FindStringSubmatch(n); m != nil {
		return firstGroup(m) + "i"
	}
	return ""
}

func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
