package charts

import (
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
)

func strp(s string) *string { return &s }

func fp(v float64) *float64 { return &v }

// fixture builds shot rows from parallel numeric columns. A NaN entry is
// stored as null.
func fixture(cols map[string][]float64) []shots.Shot {
	n := 0
	for _, vs := range cols {
		n = max(n, len(vs))
	}
	rows := make([]shots.Shot, n)
	for i := range rows {
		rows[i].Values = make(map[string]shots.Value)
	}
	for k, vs := range cols {
		for i, v := range vs {
			if v != v {
				rows[i].Values[k] = shots.Value{}
				continue
			}
			rows[i].Values[k] = shots.Num(v)
		}
	}
	return rows
}

func resolved(cols ...shots.Column) *columns.Resolved {
	return columns.Resolve(cols)
}
