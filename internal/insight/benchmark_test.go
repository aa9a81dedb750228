package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/shots"
	"github.com/banshee-data/swing.report/internal/stats"
)

func str(s string) *string { return &s }

func TestLookupBenchmark(t *testing.T) {
	b, ok := LookupBenchmark("Bois 1")
	require.True(t, ok)
	assert.Equal(t, 275.0, b.Carry)

	b, ok = LookupBenchmark("Fer 7")
	require.True(t, ok)
	assert.Equal(t, 1.33, b.Smash)

	_, ok = LookupBenchmark("Putter")
	assert.False(t, ok)
	assert.Len(t, PGATour, 12)
}

func TestCompareToPGAConvertsUnits(t *testing.T) {
	cols := []shots.Column{
		{Key: "club_speed", Unit: str("km/h")},
		{Key: "ball_speed", Unit: str("km/h")},
		{Key: "carry", Unit: str("m")},
		{Key: "spin", Unit: str("rpm")},
	}
	rows := []shots.Shot{
		{Values: map[string]shots.Value{"club_speed": shots.Num(144.84), "ball_speed": shots.Num(193.12), "carry": shots.Num(150), "spin": shots.Num(7000)}},
		{Values: map[string]shots.Value{"club_speed": shots.Num(144.84), "ball_speed": shots.Num(193.12), "carry": shots.Num(160), "spin": shots.Num(7200)}},
	}

	c := CompareToPGA("fer 7", rows, columns.Resolve(cols))
	require.NotNil(t, c)
	assert.Equal(t, "7i", c.Benchmark.Key)

	club, ok := c.Delta(columns.ClubSpeed)
	require.True(t, ok)
	assert.InDelta(t, 90.0, club.Session, 0.01)
	assert.InDelta(t, 0.0, club.Delta, 0.01)

	ball, _ := c.Delta(columns.BallSpeed)
	assert.InDelta(t, 0.0, ball.Delta, 0.01)

	smash, ok := c.Delta(columns.Smash)
	require.True(t, ok, "smash derived from speeds")
	assert.InDelta(t, 1.3333-1.33, smash.Delta, 0.001)

	carry, _ := c.Delta(columns.Carry)
	assert.InDelta(t, 155*1.0936132983-172, carry.Delta, 1e-6)
	assert.Equal(t, "yd", carry.Unit)

	spin, _ := c.Delta(columns.Spin)
	assert.InDelta(t, 3, spin.Delta, 1e-9)

	_, ok = c.Delta(columns.Height)
	assert.False(t, ok, "height not measured")

	assert.Equal(t, []string{"club_speed", "ball_speed", "smash", "carry", "spin"}, deltaMetrics(c))
}

func deltaMetrics(c *Comparison) []string {
	var out []string
	for _, d := range c.Deltas {
		out = append(out, d.Metric)
	}
	return out
}

func TestCompareToPGAUnknownClub(t *testing.T) {
	cols := []shots.Column{{Key: "carry"}}
	rows := []shots.Shot{{Values: map[string]shots.Value{"carry": shots.Num(150)}}}
	assert.Nil(t, CompareToPGA("putter", rows, columns.Resolve(cols)))
	assert.Nil(t, CompareToPGA("driver", nil, columns.Resolve(cols)))
}

func TestBenchmarkText(t *testing.T) {
	c := &Comparison{
		Benchmark: PGATour["driver"],
		Deltas: []Delta{
			{Metric: "club_speed", Label: "Vitesse club", Unit: "mph", Benchmark: 113, Delta: -8.24},
			{Metric: "smash", Label: "Smash", Benchmark: 1.48, Delta: -0.031},
			{Metric: "carry", Label: "Carry", Unit: "yd", Benchmark: 275, Delta: -55},
			{Metric: "spin", Label: "Spin", Unit: "rpm", Benchmark: 2686, Delta: 412},
		},
	}
	assert.Equal(t, "Vitesse club -8.2 mph | Smash -0.03 | Carry -55.0 yd | Spin +412 rpm", BenchmarkInsight(c))
	assert.Equal(t, "Plus grand écart : carry, 20% en dessous de la moyenne PGA au Driver.", BenchmarkCommentary(c))
	assert.Equal(t, "", BenchmarkInsight(nil))
}

func TestSessionNarrative(t *testing.T) {
	mean, std := 152.0, 6.14
	got := SessionNarrative(SessionFacts{
		Club:       "Fer 7",
		Shots:      24,
		Carry:      &stats.Summary{N: 24, Mean: &mean, Std: &std},
		CarryUnit:  "m",
		Dispersion: &DispersionStat{Std: 12, Corridor: stats.Corridor{Low: 5, High: 10, WithinHighPct: 30}},
		Smash:      &SmashStat{N: 24, Mean: 1.33, CV: fp(0.03)},
	})

	assert.True(t, strings.HasPrefix(got, "Séance de 24 coups (Fer 7). Carry moyen 152 m (ET 6.1 m)."), got)
	assert.Contains(t, got, "Dispersion large")
	assert.Contains(t, got, "Smash moyen 1.33. Contact plutôt régulier")
	assert.True(t, strings.HasSuffix(got, "Priorité : la direction de départ."), got)

	assert.Equal(t, "Aucun coup enregistré sur cette séance.", SessionNarrative(SessionFacts{}))
	assert.Equal(t, "Séance de 3 coups. Séance solide, à consolider.", SessionNarrative(SessionFacts{Shots: 3}))
}

func TestSelectionSummary(t *testing.T) {
	got := SelectionSummary([]Selected{
		{Title: "Dispersion", Insight: "ET 5.2 m - 72% dans 10 m"},
		{Title: "Vide"},
		{Title: "Smash", Insight: "Smash moyen 1.46"},
	})
	assert.Equal(t, "Dispersion : ET 5.2 m - 72% dans 10 m. Smash : Smash moyen 1.46.", got)
	assert.Equal(t, "", SelectionSummary(nil))
}
