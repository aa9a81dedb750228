// Package units provides unit constants, tolerant unit parsing and the
// conversions used to compare radar sessions with benchmark tables.
package units

import "strings"

// Speed unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// Distance unit constants
const (
	Yards       = "yd"
	Meters      = "m"
	Feet        = "ft"
	Inches      = "in"
	Millimeters = "mm"
	Centimeters = "cm"
)

// ValidUnits lists the canonical speed units a speed column may use.
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid reports whether a free-text unit label such as "km/h" or "MPH"
// names one of ValidUnits.
func IsValid(unit string) bool {
	return SpeedUnit(unit) != ""
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// speedAliases maps normalized unit tokens to speed unit constants.
var speedAliases = map[string]string{
	"mph":      MPH,
	"mi h":     MPH,
	"miles h":  MPH,
	"km h":     KMPH,
	"kmh":      KMPH,
	"kmph":     KMPH,
	"kph":      KPH,
	"km hr":    KMPH,
	"m s":      MPS,
	"mps":      MPS,
	"m sec":    MPS,
	"metres s": MPS,
}

var distanceAliases = map[string]string{
	"yd":     Yards,
	"yds":    Yards,
	"yard":   Yards,
	"yards":  Yards,
	"verges": Yards,
	"m":      Meters,
	"meter":  Meters,
	"meters": Meters,
	"metre":  Meters,
	"metres": Meters,
	"ft":     Feet,
	"feet":   Feet,
	"foot":   Feet,
	"pied":   Feet,
	"pieds":  Feet,
	"in":     Inches,
	"inch":   Inches,
	"inches": Inches,
	"pouce":  Inches,
	"pouces": Inches,
	"mm":     Millimeters,
	"cm":     Centimeters,
}

// SpeedUnit returns the speed unit constant for a free-text unit label such
// as "km/h" or "m/s", or "" when the label is not a speed unit.
func SpeedUnit(unit string) string {
	return speedAliases[NormalizeToken(unit)]
}

// DistanceUnit returns the distance unit constant for a free-text unit label,
// or "" when the label is not a distance unit.
func DistanceUnit(unit string) string {
	return distanceAliases[NormalizeToken(unit)]
}

// ConvertSpeed converts a speed from meters per second to the target units
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.23694 // m/s to mph
	case KMPH, KPH:
		return speedMPS * 3.6 // m/s to km/h
	case MPS:
		return speedMPS
	default:
		return speedMPS
	}
}

// ToMph converts a speed expressed in unit to miles per hour. A nil value
// stays nil; an unknown or empty unit is assumed to already be mph.
func ToMph(value *float64, unit string) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	switch SpeedUnit(unit) {
	case KMPH, KPH:
		v = ConvertSpeed(v/3.6, MPH)
	case MPS:
		v = ConvertSpeed(v, MPH)
	}
	return &v
}

// ToYards converts a distance expressed in unit to yards. A nil value stays
// nil; an unknown or empty unit is assumed to already be yards.
func ToYards(value *float64, unit string) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	switch DistanceUnit(unit) {
	case Meters:
		v *= 1.0936132983
	case Feet:
		v /= 3
	}
	return &v
}

// ToMeters converts a distance expressed in unit to meters. Unknown units
// pass through.
func ToMeters(value *float64, unit string) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	switch DistanceUnit(unit) {
	case Yards:
		v *= 0.9144
	case Feet:
		v *= 0.3048
	}
	return &v
}

// ToInches converts a face impact offset to inches. Unknown units pass through.
func ToInches(value *float64, unit string) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	switch DistanceUnit(unit) {
	case Millimeters:
		v /= 25.4
	case Centimeters:
		v /= 2.54
	}
	return &v
}
