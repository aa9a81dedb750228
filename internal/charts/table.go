package charts

import (
	"encoding/json"

	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/units"
)

// TableColumn is a table header cell.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit,omitempty"`
}

// TableRow is one shot rendered as display strings.
type TableRow struct {
	ShotIndex int      `json:"shotIndex"`
	Cells     []string `json:"cells"`
}

// TablePayload lists shots against the resolved metrics.
type TablePayload struct {
	Annotations
	Title   string        `json:"title"`
	Columns []TableColumn `json:"columns"`
	Rows    []TableRow    `json:"rows"`
}

func (*TablePayload) Kind() Kind { return KindTable }

func (p TablePayload) MarshalJSON() ([]byte, error) {
	type alias TablePayload
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindTable, alias(p)})
}

// BuildTable formats every shot over the resolved metrics in resolution
// order. Numbers use FormatTickValue without a unit; the unit is carried in
// the header.
func BuildTable(rows []shots.Shot, r *columns.Resolved, title string) *TablePayload {
	p := &TablePayload{Title: title}
	var keys []string
	for _, m := range tableOrder {
		c := r.Column(m)
		if c == nil {
			continue
		}
		keys = append(keys, c.Key)
		p.Columns = append(p.Columns, TableColumn{Key: c.Key, Label: r.Label(m), Unit: c.UnitName()})
	}
	if len(keys) == 0 || len(rows) == 0 {
		return nil
	}
	nums := shots.Numbering(rows)
	for i, s := range rows {
		row := TableRow{ShotIndex: nums[i], Cells: make([]string, len(keys))}
		for j, k := range keys {
			v := s.Get(k)
			switch {
			case v.IsNull():
				row.Cells[j] = "-"
			case v.Kind() == shots.String:
				row.Cells[j] = v.Text()
			default:
				f, ok := v.Float()
				if !ok {
					row.Cells[j] = "-"
					continue
				}
				row.Cells[j] = units.FormatTickValue(f, "")
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

// tableOrder is the reading order of the shots table.
var tableOrder = []columns.Metric{
	columns.Club, columns.ShotType,
	columns.ClubSpeed, columns.BallSpeed, columns.Smash,
	columns.LaunchAngle, columns.LaunchDirection, columns.Spin, columns.SpinAxis,
	columns.Carry, columns.Total, columns.Lateral, columns.Height, columns.DescentAngle,
	columns.ClubPath, columns.FaceAngle, columns.FaceToPath, columns.AttackAngle,
	columns.ImpactX, columns.ImpactY,
}
