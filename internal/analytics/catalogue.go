package analytics

import (
	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/insight"
	"github.com/banshee-data/swing.report/internal/shots"
)

// CarryBinWidth is the histogram bin width in the carry column's unit.
const CarryBinWidth = 10.0

// source is what a chart builder reads.
type source struct {
	rows []shots.Shot
	r    *columns.Resolved
	club string
}

// Chart describes one entry of the chart catalogue.
type Chart struct {
	Key   string
	Title string
	Kind  charts.Kind
	Role  insight.Role
	build func(src source, title string) charts.Payload
}

// Catalogue lists the charts of a report in order.
var Catalogue = []Chart{
	scatterChart(config.ChartDispersion, "Dispersion latérale", columns.Lateral, columns.Carry, insight.RoleDispersion),
	scatterChart(config.ChartCarryVsBallSpeed, "Carry vs vitesse de balle", columns.BallSpeed, columns.Carry, insight.RoleGeneric),
	scatterChart(config.ChartSpinVsLaunch, "Spin vs angle de lancement", columns.LaunchAngle, columns.Spin, insight.RoleGeneric),
	scatterChart(config.ChartFaceToPathLateral, "Face-to-path vs écart latéral", columns.FaceToPath, columns.Lateral, insight.RoleGeneric),
	{
		Key: config.ChartSpeedTrend, Title: "Vitesses club et balle", Kind: charts.KindLine,
		build: func(src source, title string) charts.Payload {
			if p := charts.BuildMetricLine(src.rows, src.r, title, columns.ClubSpeed, columns.BallSpeed); p != nil {
				return p
			}
			return nil
		},
	},
	{
		Key: config.ChartCarryTrend, Title: "Évolution du carry", Kind: charts.KindLine,
		build: func(src source, title string) charts.Payload {
			if p := charts.BuildMetricLine(src.rows, src.r, title, columns.Carry); p != nil {
				return p
			}
			return nil
		},
	},
	{
		Key: config.ChartSmashTrend, Title: "Smash factor", Kind: charts.KindLine, Role: insight.RoleSmash,
		build: func(src source, title string) charts.Payload {
			vals, idx := charts.SmashSeries(src.rows, src.r)
			if p := charts.BuildLine(title, charts.NewSeries("Smash", "", vals, idx)); p != nil {
				return p
			}
			return nil
		},
	},
	{
		Key: config.ChartCarryHist, Title: "Distribution du carry", Kind: charts.KindHist,
		build: func(src source, title string) charts.Payload {
			key := src.r.Key(columns.Carry)
			if key == "" {
				return nil
			}
			bins := charts.BinValues(shots.Numbers(src.rows, key), CarryBinWidth)
			if p := charts.BuildHist(title, src.r.Unit(columns.Carry), bins); p != nil {
				return p
			}
			return nil
		},
	},
	{
		Key: config.ChartImpactHeatmap, Title: "Impacts sur la face", Kind: charts.KindHeatmap, Role: insight.RoleImpact,
		build: func(src source, title string) charts.Payload {
			if p := charts.BuildHeatmap(src.rows, src.r, title, src.club); p != nil {
				return p
			}
			return nil
		},
	},
	{
		Key: config.ChartCorrelationMatrix, Title: "Corrélations", Kind: charts.KindMatrix,
		build: func(src source, title string) charts.Payload {
			p := charts.BuildMatrix(src.rows, src.r, title,
				columns.ClubSpeed, columns.BallSpeed, columns.Smash, columns.Carry,
				columns.Spin, columns.LaunchAngle, columns.Lateral, columns.FaceToPath)
			if p != nil {
				return p
			}
			return nil
		},
	},
	{
		Key: config.ChartCarryModel, Title: "Modèle de carry", Kind: charts.KindModel,
		build: func(src source, title string) charts.Payload {
			p := charts.BuildModel(src.rows, src.r, charts.ModelSpec{
				Title:      title,
				Name:       "carry ~ vitesse de balle + lancement + spin",
				Target:     columns.Carry,
				Predictors: []columns.Metric{columns.BallSpeed, columns.LaunchAngle, columns.Spin},
			})
			if p != nil {
				return p
			}
			return nil
		},
	},
	{
		Key: config.ChartShotsTable, Title: "Tableau des coups", Kind: charts.KindTable,
		build: func(src source, title string) charts.Payload {
			if p := charts.BuildTable(src.rows, src.r, title); p != nil {
				return p
			}
			return nil
		},
	},
}

func scatterChart(key, title string, x, y columns.Metric, role insight.Role) Chart {
	return Chart{
		Key: key, Title: title, Kind: charts.KindScatter, Role: role,
		build: func(src source, title string) charts.Payload {
			if p := charts.BuildScatter(src.rows, src.r, charts.ScatterSpec{Title: title, X: x, Y: y}); p != nil {
				return p
			}
			return nil
		},
	}
}

// Lookup returns the catalogue entry for key.
func Lookup(key string) (Chart, bool) {
	for _, c := range Catalogue {
		if c.Key == key {
			return c, true
		}
	}
	return Chart{}, false
}

// BuildChart computes the payload of a catalogue chart from session rows.
// The result is nil when the session lacks the data.
func BuildChart(key string, cols []shots.Column, rows []shots.Shot, club string) charts.Payload {
	c, ok := Lookup(key)
	if !ok {
		return nil
	}
	r := columns.Resolve(cols)
	return c.build(source{rows: rows, r: r, club: SessionClub(club, rows, r)}, c.Title)
}
