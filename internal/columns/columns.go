// Package columns maps loosely named launch monitor columns to canonical
// metrics. Exports are free text in several languages, so resolution is
// pattern based: each metric carries a priority-ordered list of patterns.
package columns

import (
	"errors"
	"fmt"
	"strings"

	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/units"
)

// Metric is a canonical shot metric.
type Metric string

const (
	ClubSpeed       Metric = "club_speed"
	BallSpeed       Metric = "ball_speed"
	Smash           Metric = "smash"
	Carry           Metric = "carry"
	Total           Metric = "total"
	Lateral         Metric = "lateral"
	Spin            Metric = "spin"
	SpinAxis        Metric = "spin_axis"
	LaunchAngle     Metric = "launch_angle"
	LaunchDirection Metric = "launch_direction"
	Height          Metric = "height"
	DescentAngle    Metric = "descent_angle"
	FaceAngle       Metric = "face_angle"
	ClubPath        Metric = "club_path"
	FaceToPath      Metric = "face_to_path"
	AttackAngle     Metric = "attack_angle"
	ImpactX         Metric = "impact_horizontal"
	ImpactY         Metric = "impact_vertical"
	ShotType        Metric = "shot_type"
	Club            Metric = "club"
)

var patterns = map[Metric][]string{
	ClubSpeed:       {"club speed", "clubhead speed", "club head speed", "vitesse club", "vitesse de club", "vitesse du club", "vitesse tete"},
	BallSpeed:       {"ball speed", "vitesse balle", "vitesse de balle", "vitesse de la balle"},
	Smash:           {"smash factor", "smash", "facteur smash", "efficacite"},
	Carry:           {"carry", "distance carry", "carry distance", "portee", "distance de vol"},
	Total:           {"total", "distance total", "total distance", "distance roulee"},
	Lateral:         {"lateral", "distance lateral", "carry side", "side carry", "side total", "offline", "deviation", "ecart lateral", "ecart"},
	Spin:            {"spin rate", "spin", "backspin", "total spin", "effet", "rotation"},
	SpinAxis:        {"spin axis", "axe de spin", "axe spin", "axe de rotation", "spin tilt"},
	LaunchAngle:     {"launch angle", "vertical launch", "launch v", "angle de lancement", "angle de depart vertical", "launch"},
	LaunchDirection: {"launch direction", "horizontal launch", "launch h", "direction de depart", "angle de depart horizontal", "direction"},
	Height:          {"height", "max height", "peak height", "apex", "hauteur", "hauteur max"},
	DescentAngle:    {"descent angle", "land angle", "landing angle", "descent", "angle de descente", "angle d atterrissage"},
	FaceAngle:       {"face angle", "angle de face", "angle face", "face"},
	ClubPath:        {"club path", "swing path", "chemin de club", "trajectoire club", "path"},
	FaceToPath:      {"face to path", "ftp", "face path", "face au chemin", "face chemin"},
	AttackAngle:     {"attack angle", "angle of attack", "aoa", "angle d attaque"},
	ImpactX:         {"impact horizontal", "impact x", "face impact horizontal", "horizontal impact", "impact lateral"},
	ImpactY:         {"impact vertical", "impact y", "face impact vertical", "vertical impact", "impact height"},
	ShotType:        {"shot type", "type de coup", "shot shape", "forme de coup", "trajectoire", "type"},
	Club:            {"club", "club name", "club type", "baton"},
}

// order lists metrics from the most to the least specific pattern set so
// that a broad pattern ("face", "club") never claims a column a narrower
// metric ("face impact horizontal", "club speed") would resolve.
var order = []Metric{
	ImpactX, ImpactY, SpinAxis, FaceToPath, FaceAngle, ClubPath,
	AttackAngle, LaunchDirection, LaunchAngle, ClubSpeed, BallSpeed,
	Smash, Lateral, Carry, Spin, Total, Height, DescentAngle,
	ShotType, Club,
}

// All returns every metric in resolution order.
func All() []Metric {
	return append([]Metric(nil), order...)
}

// Patterns returns a copy of the priority-ordered patterns for m.
func Patterns(m Metric) []string {
	return append([]string(nil), patterns[m]...)
}

// FindColumn returns the first column matching patterns. Patterns are tried
// in order against each column's normalized key prefix; when nothing
// matches, a second pass looks for a pattern inside the normalized label or
// group. Returns nil when no column matches.
func FindColumn(cols []shots.Column, pats []string) *shots.Column {
	norm := make([]string, 0, len(pats))
	for _, p := range pats {
		if n := units.NormalizeToken(p); n != "" {
			norm = append(norm, n)
		}
	}

	keys := make([]string, len(cols))
	for i := range cols {
		keys[i] = units.NormalizeToken(cols[i].Key)
	}
	for _, p := range norm {
		for i := range cols {
			if strings.HasPrefix(keys[i], p) {
				return &cols[i]
			}
		}
	}

	for _, p := range norm {
		for i := range cols {
			label := units.NormalizeToken(cols[i].Label)
			group := units.NormalizeToken(cols[i].GroupName())
			if strings.Contains(label, p) || strings.Contains(group, p) {
				return &cols[i]
			}
		}
	}
	return nil
}

// Resolved is the metric to column mapping computed once per render.
type Resolved struct {
	cols map[Metric]*shots.Column
}

// Resolve assigns columns to metrics. Each column is claimed by at most one
// metric.
func Resolve(cols []shots.Column) *Resolved {
	r := &Resolved{cols: make(map[Metric]*shots.Column)}
	claimed := make(map[string]bool)
	for _, m := range order {
		free := make([]shots.Column, 0, len(cols))
		for _, c := range cols {
			if !claimed[c.Key] {
				free = append(free, c)
			}
		}
		if c := FindColumn(free, patterns[m]); c != nil {
			col := *c
			r.cols[m] = &col
			claimed[c.Key] = true
		}
	}
	return r
}

// Column returns the column resolved for m, or nil.
func (r *Resolved) Column(m Metric) *shots.Column {
	if r == nil {
		return nil
	}
	return r.cols[m]
}

// Key returns the shot key for m, or "" when unresolved.
func (r *Resolved) Key(m Metric) string {
	if c := r.Column(m); c != nil {
		return c.Key
	}
	return ""
}

// Unit returns the source unit for m, or "".
func (r *Resolved) Unit(m Metric) string {
	return r.Column(m).UnitName()
}

// Label returns the display label for m, falling back to the metric name.
func (r *Resolved) Label(m Metric) string {
	if c := r.Column(m); c != nil && c.Label != "" {
		return c.Label
	}
	return string(m)
}

// Has reports whether every metric in ms resolved to a column.
func (r *Resolved) Has(ms ...Metric) bool {
	for _, m := range ms {
		if r.Column(m) == nil {
			return false
		}
	}
	return true
}

// ErrUnknownSpeedUnit is returned by CheckSpeedUnits.
var ErrUnknownSpeedUnit = errors.New("unknown speed unit")

// CheckSpeedUnits rejects a resolved club or ball speed column whose unit is
// set but is not a speed unit. Speeds without a unit are read as mph.
func (r *Resolved) CheckSpeedUnits() error {
	for _, m := range []Metric{ClubSpeed, BallSpeed} {
		c := r.Column(m)
		if c == nil || c.UnitName() == "" || units.IsValid(c.UnitName()) {
			continue
		}
		return fmt.Errorf("column %q: %w %q (want %s)", c.Key, ErrUnknownSpeedUnit, c.UnitName(), units.GetValidUnitsString())
	}
	return nil
}
