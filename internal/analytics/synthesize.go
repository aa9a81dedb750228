package analytics

import (
	"math"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/outliers"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
	"github.com/banshee-data/swing.report/internal/units"
)

// Segment dimensions.
const (
	DimShotType = "shot_type"
	DimSide     = "side"
	DimSmash    = "smash"
	DimImpact   = "impact_zone"
	DimClub     = "club"
)

// CenterZoneInches is the horizontal half-width of the centred impact zone.
const CenterZoneInches = 0.25

// segmentMetrics are summarised inside every segment.
var segmentMetrics = []columns.Metric{
	columns.ClubSpeed, columns.BallSpeed, columns.Smash, columns.Carry,
	columns.Total, columns.Lateral, columns.Spin, columns.LaunchAngle,
}

// Synthesize computes the analytics of a session from its rows. It never
// fills ChartsData.
func Synthesize(cols []shots.Column, rows []shots.Shot, cfg *config.RadarConfig, club string) *RadarAnalytics {
	r := columns.Resolve(cols)
	a := &RadarAnalytics{
		GlobalStats: make(map[string]stats.Summary),
		Outliers:    Outliers{Flags: outliers.Detect(rows, r)},
		Meta: Meta{
			Club:   SessionClub(club, rows, r),
			Shots:  len(rows),
			Units:  make(map[string]string),
			Locale: DefaultLocale,
		},
	}
	for _, c := range cols {
		if u := c.UnitName(); u != "" {
			a.Meta.Units[c.Key] = u
		}
		if vals := shots.Numbers(rows, c.Key); len(vals) > 0 {
			a.GlobalStats[c.Key] = stats.Describe(vals)
		}
	}
	if lat := lateralMeters(rows, r); len(lat) > 0 {
		corridor := cfg.GetLatCorridorMeters()
		a.Derived.Corridors = stats.Corridors(lat, corridor[0], corridor[1])
	}
	a.Segments = segments(rows, r)
	return a
}

// SessionClub returns club when set, otherwise the first club name found in
// the rows.
func SessionClub(club string, rows []shots.Shot, r *columns.Resolved) string {
	if club != "" {
		return club
	}
	key := r.Key(columns.Club)
	if key == "" {
		return ""
	}
	for _, s := range rows {
		if v := s.Get(key); v.Kind() == shots.String && v.Text() != "" {
			return v.Text()
		}
	}
	return ""
}

func lateralMeters(rows []shots.Shot, r *columns.Resolved) []float64 {
	key := r.Key(columns.Lateral)
	if key == "" {
		return nil
	}
	unit := r.Unit(columns.Lateral)
	vals := shots.Numbers(rows, key)
	for i := range vals {
		vals[i] = *units.ToMeters(&vals[i], unit)
	}
	return vals
}

// grouping assigns a shot to a segment label; "" leaves it out.
type grouping struct {
	dimension string
	order     []string
	label     func(i int, s shots.Shot) string
}

func segments(rows []shots.Shot, r *columns.Resolved) []Segment {
	var out []Segment
	for _, g := range groupings(rows, r) {
		buckets := make(map[string][]shots.Shot)
		var seen []string
		for i, s := range rows {
			l := g.label(i, s)
			if l == "" {
				continue
			}
			if _, ok := buckets[l]; !ok {
				seen = append(seen, l)
			}
			buckets[l] = append(buckets[l], s)
		}
		order := g.order
		if order == nil {
			order = seen
		}
		for _, l := range order {
			b := buckets[l]
			if len(b) == 0 {
				continue
			}
			out = append(out, Segment{Dimension: g.dimension, Label: l, N: len(b), Stats: summarise(b, r)})
		}
	}
	return out
}

func summarise(rows []shots.Shot, r *columns.Resolved) map[string]stats.Summary {
	out := make(map[string]stats.Summary)
	for _, m := range segmentMetrics {
		key := r.Key(m)
		if key == "" {
			continue
		}
		if vals := shots.Numbers(rows, key); len(vals) > 0 {
			out[key] = stats.Describe(vals)
		}
	}
	if r.Key(columns.Smash) == "" {
		if vals, _ := charts.SmashSeries(rows, r); len(vals) > 0 {
			out[string(columns.Smash)] = stats.Describe(vals)
		}
	}
	return out
}

func groupings(rows []shots.Shot, r *columns.Resolved) []grouping {
	var gs []grouping
	if key := r.Key(columns.ShotType); key != "" {
		gs = append(gs, grouping{dimension: DimShotType, label: textLabel(key)})
	}
	if key := r.Key(columns.Lateral); key != "" {
		gs = append(gs, grouping{
			dimension: DimSide,
			order:     []string{"gauche", "centre", "droite"},
			label: func(_ int, s shots.Shot) string {
				v, ok := s.Float(key)
				switch {
				case !ok:
					return ""
				case v < 0:
					return "gauche"
				case v > 0:
					return "droite"
				default:
					return "centre"
				}
			},
		})
	}
	if vals, idx := charts.SmashSeries(rows, r); len(vals) > 0 {
		byShot := make(map[int]float64, len(vals))
		for i, v := range vals {
			byShot[idx[i]] = v
		}
		nums := shots.Numbering(rows)
		gs = append(gs, grouping{
			dimension: DimSmash,
			order:     []string{"< 1.40", "1.40-1.45", ">= 1.45"},
			label: func(i int, _ shots.Shot) string {
				v, ok := byShot[nums[i]]
				switch {
				case !ok:
					return ""
				case v < 1.40:
					return "< 1.40"
				case v < 1.45:
					return "1.40-1.45"
				default:
					return ">= 1.45"
				}
			},
		})
	}
	if key := r.Key(columns.ImpactX); key != "" {
		unit := r.Unit(columns.ImpactX)
		gs = append(gs, grouping{
			dimension: DimImpact,
			order:     []string{"talon", "centre", "pointe"},
			label: func(_ int, s shots.Shot) string {
				v, ok := s.Float(key)
				if !ok {
					return ""
				}
				in := *units.ToInches(&v, unit)
				switch {
				case math.Abs(in) < CenterZoneInches:
					return "centre"
				case in < 0:
					return "talon"
				default:
					return "pointe"
				}
			},
		})
	}
	if key := r.Key(columns.Club); key != "" {
		gs = append(gs, grouping{dimension: DimClub, label: textLabel(key)})
	}
	return gs
}

func textLabel(key string) func(int, shots.Shot) string {
	return func(_ int, s shots.Shot) string {
		v := s.Get(key)
		if v.IsNull() {
			return ""
		}
		return v.Text()
	}
}
