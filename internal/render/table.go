package render

import (
	"html/template"
	"io"
	"math"

	"github.com/banshee-data/swing.report/internal/charts"
)

var tableTmpl = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead><tr><th>Coup</th>{{range .Payload.Columns}}<th>{{.Label}}{{if .Unit}} ({{.Unit}}){{end}}</th>{{end}}</tr></thead>
<tbody>
{{range .Payload.Rows}}<tr><td>#{{.ShotIndex}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

func tableHTML(w io.Writer, title string, p *charts.TablePayload) error {
	if title == "" {
		title = p.Title
	}
	return tableTmpl.Execute(w, struct {
		Title   string
		Payload *charts.TablePayload
	}{title, p})
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
