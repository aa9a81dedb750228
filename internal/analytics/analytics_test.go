package analytics

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/shots"
)

func TestSynthesize(t *testing.T) {
	in := loadSession(t)
	a := Synthesize(in.Columns, in.Shots, nil, in.Club)

	assert.Equal(t, "Driver", a.Meta.Club)
	assert.Equal(t, 8, a.Meta.Shots)
	assert.Equal(t, DefaultLocale, a.Meta.Locale)
	assert.Equal(t, "yd", a.Meta.Units["carry"])
	assert.NotContains(t, a.Meta.Units, "shot_type")

	require.Contains(t, a.GlobalStats, "carry")
	assert.Equal(t, 8, a.GlobalStats["carry"].N)
	assert.InDelta(t, 235.625, *a.GlobalStats["carry"].Mean, 1e-9)
	assert.NotContains(t, a.GlobalStats, "shot_type")

	require.NotNil(t, a.Derived.Corridors)
	assert.Equal(t, 8, a.Derived.Corridors.N)
	assert.Equal(t, 5.0, a.Derived.Corridors.Low)

	require.Contains(t, a.Outliers.Flags, "8")
	assert.Contains(t, a.Outliers.Flags["8"], "carry:low")
	assert.Nil(t, a.ChartsData)
}

func TestSynthesizeSegments(t *testing.T) {
	in := loadSession(t)
	a := Synthesize(in.Columns, in.Shots, nil, in.Club)

	labels := map[string][]string{}
	counts := map[string]int{}
	for _, s := range a.Segments {
		labels[s.Dimension] = append(labels[s.Dimension], s.Label)
		counts[s.Dimension+"/"+s.Label] = s.N
	}

	want := map[string][]string{
		DimShotType: {"draw", "fade", "straight", "slice"},
		DimSide:     {"gauche", "centre", "droite"},
		DimSmash:    {"< 1.40", ">= 1.45"},
		DimImpact:   {"talon", "centre", "pointe"},
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("segment labels mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, counts["shot_type/draw"])
	assert.Equal(t, 1, counts["side/centre"])
	assert.Equal(t, 7, counts["smash/>= 1.45"])
	assert.Equal(t, 1, counts["smash/< 1.40"])
	assert.Equal(t, 4, counts["impact_zone/centre"])

	for _, s := range a.Segments {
		if s.Dimension == DimSmash {
			assert.Contains(t, s.Stats, "smash", "derived smash summarised")
		}
	}
}

func TestSessionClubFromColumn(t *testing.T) {
	cols, rows := carryOnly(200, 210)
	cols = append(cols, shots.Column{Key: "club", Label: "Club"})
	rows[1].Values["club"] = shots.Str("7 Iron")

	a := Synthesize(cols, rows, nil, "")
	assert.Equal(t, "7 Iron", a.Meta.Club)
	assert.Equal(t, "Bois 3", Synthesize(cols, rows, nil, "Bois 3").Meta.Club)
}

func TestRadarAnalyticsJSON(t *testing.T) {
	data := []byte(`{
	  "globalStats": {"carry": {"n": 2, "mean": 200, "std": 5, "cv": 0.025, "min": 195, "max": 205}},
	  "segments": [],
	  "derived": {"corridors": null},
	  "outliers": {"flags": {"2": ["carry:low"]}},
	  "meta": {"club": "Driver", "shots": 2, "units": {"carry": "yd"}, "locale": "fr-FR"},
	  "chartsData": {
	    "carry_hist": {"type": "hist", "title": "Carry", "bins": [{"label": "190-200", "count": 1}, {"label": "200-210", "count": 3}], "total": 4, "insight": "Classe 200-210", "notes": "Précalculé"},
	    "dispersion": null
	  }
	}`)

	var a RadarAnalytics
	require.NoError(t, json.Unmarshal(data, &a))
	assert.Equal(t, 200.0, *a.GlobalStats["carry"].Mean)
	assert.Equal(t, []string{"carry:low"}, a.Outliers.Flags["2"])

	p, ok := a.Precomputed(config.ChartCarryHist)
	require.True(t, ok)
	hist, isHist := p.(*charts.HistPayload)
	require.True(t, isHist)
	assert.Equal(t, 4, hist.Total)
	assert.Equal(t, "Précalculé", hist.Annotation().Notes)

	_, ok = a.Precomputed(config.ChartDispersion)
	assert.False(t, ok, "null payloads are dropped")

	out, err := json.Marshal(&a)
	require.NoError(t, err)
	var again RadarAnalytics
	require.NoError(t, json.Unmarshal(out, &again))
	if diff := cmp.Diff(a.ChartsData, again.ChartsData); diff != "" {
		t.Errorf("chartsData changed after re-encoding (-want +got):\n%s", diff)
	}
}

func TestRadarAnalyticsUnknownPayload(t *testing.T) {
	var a RadarAnalytics
	err := json.Unmarshal([]byte(`{"chartsData": {"x": {"type": "pie"}}}`), &a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chartsData[x]")
}

func TestPrecomputedNil(t *testing.T) {
	var a *RadarAnalytics
	_, ok := a.Precomputed(config.ChartDispersion)
	assert.False(t, ok)
}
