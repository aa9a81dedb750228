package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/insight"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestHTMLEveryChart(t *testing.T) {
	rep := testReport(t)
	require.NotEmpty(t, rep.Charts)

	for _, c := range rep.Charts {
		t.Run(c.Key, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, HTML(&buf, c, Options{}))
			out := buf.String()
			assert.Contains(t, out, "<html")
			if c.Kind == charts.KindTable {
				assert.Contains(t, out, "<table>")
				assert.Contains(t, out, "#1")
			} else {
				assert.Contains(t, out, "echarts")
			}
		})
	}
}

func TestHTMLInsufficient(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, analytics.ChartResult{Key: config.ChartCarryHist, Title: "Distribution du carry"}, Options{AssetsHost: "/assets/"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), insight.InsufficientData)
	assert.Contains(t, buf.String(), "/assets/")
}

func TestPNGEveryChart(t *testing.T) {
	rep := testReport(t)
	for _, c := range rep.Charts {
		t.Run(c.Key, func(t *testing.T) {
			var buf bytes.Buffer
			err := PNG(&buf, c, 0, 0)
			if c.Kind == charts.KindTable {
				assert.ErrorIs(t, err, ErrUnsupported)
				return
			}
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "not a PNG")
		})
	}
}

func TestPNGInsufficient(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, analytics.ChartResult{Key: "smash_trend", Title: "Smash factor"}, 0, 0))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestScatterHighlightsSplitSeries(t *testing.T) {
	rep := testReport(t)
	c, ok := rep.Chart(config.ChartDispersion)
	require.True(t, ok)
	require.NotNil(t, c.Payload)
	require.NotEmpty(t, c.Highlights)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, c, Options{}))
	assert.Contains(t, buf.String(), "atypiques")
}

func TestLineAxisUnion(t *testing.T) {
	p := &charts.LinePayload{Series: []charts.Series{
		charts.NewSeries("a", "", []float64{1, 2}, []int{2, 0}),
		charts.NewSeries("b", "", []float64{3}, []int{1}),
	}}
	assert.Equal(t, []int{0, 1, 2}, lineAxis(p))
}

func TestCellCentre(t *testing.T) {
	assert.InDelta(t, -0.75, cellCentre(0, 4, 1), 1e-9)
	assert.InDelta(t, 0.75, cellCentre(3, 4, 1), 1e-9)
	assert.Equal(t, 0.0, cellCentre(0, 0, 1))
}

func TestGenerateColors(t *testing.T) {
	assert.Nil(t, generateColors(0))
	cs := generateColors(3)
	require.Len(t, cs, 3)
	assert.NotEqual(t, cs[0], cs[1])
}

func TestTableHTMLEscapes(t *testing.T) {
	p := &charts.TablePayload{
		Title:   "Tableau",
		Columns: []charts.TableColumn{{Key: "carry", Label: "<b>Carry</b>", Unit: "yd"}},
		Rows:    []charts.TableRow{{ShotIndex: 3, Cells: []string{"240"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, tableHTML(&buf, "", p))
	out := buf.String()
	assert.False(t, strings.Contains(out, "<b>Carry</b>"))
	assert.Contains(t, out, "&lt;b&gt;Carry&lt;/b&gt; (yd)")
	assert.Contains(t, out, "<td>#3</td><td>240</td>")
}
