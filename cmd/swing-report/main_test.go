package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/api"
	"github.com/banshee-data/swing.report/internal/httputil"
	"github.com/banshee-data/swing.report/internal/testutil"
)

const sessionCSV = `Shot,Club Speed (mph),Ball Speed (mph),Carry (yd),Lateral (yd),Spin Rate (rpm),Launch Angle (deg)
1,100,148,240,-3,2600,12
2,102,151,246,2,2500,12.5
3,98,145,236,-6,2800,11
4,101,150,244,1,2550,12.2
5,99,146,238,4,2700,11.5
6,103,153,250,0,2450,13
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decodeReport(t *testing.T, out *bytes.Buffer) analytics.Report {
	t.Helper()
	var rep analytics.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep), out.String())
	return rep
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, nil, &out))
	for _, c := range commands {
		assert.Contains(t, out.String(), c.name)
	}

	out.Reset()
	err := run([]string{"frobnicate"}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, nil, &out))
	assert.True(t, strings.HasPrefix(out.String(), "swing-report "))
}

func TestAnalyzeCSV(t *testing.T) {
	path := writeFile(t, "driver.csv", sessionCSV)
	var out bytes.Buffer
	require.NoError(t, run([]string{"analyze", "-club", "Driver", path}, nil, &out))

	rep := decodeReport(t, &out)
	assert.Equal(t, 6, rep.Meta.Shots)
	assert.Equal(t, "Driver", rep.Meta.Club)
	_, ok := rep.Chart("dispersion")
	assert.True(t, ok)
}

func TestAnalyzeStdinJSON(t *testing.T) {
	var in bytes.Buffer
	cols, rows := `[{"key": "carry", "label": "Carry", "unit": "yd"}]`, `[{"shot_index": 1, "carry": 200}]`
	in.WriteString(`{"columns": ` + cols + `, "shots": ` + rows + `}`)

	var out bytes.Buffer
	require.NoError(t, run([]string{"analyze", "-"}, &in, &out))
	rep := decodeReport(t, &out)
	assert.Equal(t, 1, rep.Meta.Shots)
}

func TestAnalyzeConfigFile(t *testing.T) {
	cfg := writeFile(t, "report.yaml", "charts:\n  dispersion: false\n")
	path := writeFile(t, "driver.csv", sessionCSV)

	var out bytes.Buffer
	require.NoError(t, run([]string{"analyze", "-config", cfg, path}, nil, &out))
	rep := decodeReport(t, &out)
	_, ok := rep.Chart("dispersion")
	assert.False(t, ok)

	bad := writeFile(t, "report.txt", "")
	err := run([]string{"analyze", "-config", bad, path}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extension")
}

func TestAnalyzeErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"analyze"}, nil, &out))
	assert.Error(t, run([]string{"analyze", filepath.Join(t.TempDir(), "missing.csv")}, nil, &out))
	assert.Error(t, run([]string{"analyze", "-format", "xml", "-"}, strings.NewReader("x"), &out))
}

func TestAnalyzeRemote(t *testing.T) {
	srv := api.NewServer(testutil.OpenTestDB(t), nil, api.Options{})
	ts := httptest.NewServer(srv.Handler(srv.ServeMux()))
	defer ts.Close()

	path := writeFile(t, "driver.csv", sessionCSV)
	var out bytes.Buffer
	require.NoError(t, run([]string{"analyze", "-server", ts.URL + "/", path}, nil, &out))
	rep := decodeReport(t, &out)
	assert.Equal(t, 6, rep.Meta.Shots)
}

func TestAnalyzeRemoteError(t *testing.T) {
	mock := &httputil.MockHTTPClient{}
	mock.AddResponse(http.StatusBadRequest, `{"error": "invalid config: unknown chart key \"x\""}`)
	old := httpClient
	httpClient = mock
	t.Cleanup(func() { httpClient = old })

	path := writeFile(t, "driver.csv", sessionCSV)
	var out bytes.Buffer
	err := run([]string{"analyze", "-server", "http://swing.invalid", path}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chart key")
	require.Len(t, mock.Requests, 1)
	assert.Equal(t, "/api/analyze", mock.Requests[0].URL.Path)
}

func TestImportAndExport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "swing.db")
	csvPath := writeFile(t, "range-day.csv", sessionCSV)

	var out bytes.Buffer
	require.NoError(t, run([]string{"import", "-db-path", dbPath, "-club", "Driver", "-quiet", csvPath}, nil, &out))
	id, _, ok := strings.Cut(out.String(), ":")
	require.True(t, ok, out.String())
	assert.Contains(t, out.String(), "6 shots")

	out.Reset()
	require.NoError(t, run([]string{"import", "-db-path", dbPath, "-session", id, "-quiet", csvPath}, nil, &out))

	outDir := filepath.Join(dir, "out")
	out.Reset()
	require.NoError(t, run([]string{"export", "-db-path", dbPath, "-out", outDir, "-formats", "json,html", id}, nil, &out))
	assert.Contains(t, out.String(), filepath.Join(outDir, "range-day", "report.json"))

	data, err := os.ReadFile(filepath.Join(outDir, "range-day", "report.json"))
	require.NoError(t, err)
	var rep analytics.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, 12, rep.Meta.Shots)
	assert.FileExists(t, filepath.Join(outDir, "range-day", "dispersion.html"))
	assert.NoFileExists(t, filepath.Join(outDir, "range-day", "dispersion.png"))
}

func TestImportErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "swing.db")
	var out bytes.Buffer
	assert.Error(t, run([]string{"import", "-db-path", dbPath}, nil, &out))
	assert.Error(t, run([]string{"import", "-db-path", dbPath, "-quiet", "-"}, strings.NewReader(""), &out))

	knots := writeFile(t, "knots.csv", strings.Replace(sessionCSV, "Ball Speed (mph)", "Ball Speed (kn)", 1))
	err := run([]string{"import", "-db-path", dbPath, "-quiet", knots}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown speed unit")

	csvPath := writeFile(t, "x.csv", sessionCSV)
	err = run([]string{"import", "-db-path", dbPath, "-session", "missing", "-quiet", csvPath}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestExportErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "swing.db")
	var out bytes.Buffer
	assert.Error(t, run([]string{"export", "-db-path", dbPath, "-formats", "pdf", "x"}, nil, &out))
	assert.Error(t, run([]string{"export", "-db-path", dbPath, "missing"}, nil, &out))
}

func TestSessionLabel(t *testing.T) {
	assert.Equal(t, "given", sessionLabel("given", "/tmp/a.csv"))
	assert.Equal(t, "range-day", sessionLabel("", "/tmp/range-day.csv"))
	assert.Equal(t, "stdin", sessionLabel("", "-"))
}

func TestServeRejectsBadSetup(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"serve", "-listen", ""}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen address")

	cfg := writeFile(t, "bad.yaml", "options:\n  aiSyntax: html\n")
	err = run([]string{"serve", "-config", cfg}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aiSyntax")

	err = run([]string{"serve", "-db-path", filepath.Join(t.TempDir(), "s.db"), "-redis-url", "mysql://nope"}, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis url")
}
