package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swing.report/internal/shots"
)

const sessionJSON = `{
  "club": "Driver",
  "columns": [
    {"key": "club_speed", "group": "Club", "label": "Club Speed", "unit": "mph"},
    {"key": "ball_speed", "group": "Ball", "label": "Ball Speed", "unit": "mph"},
    {"key": "carry", "group": "Distance", "label": "Carry", "unit": "yd"},
    {"key": "lateral", "group": "Distance", "label": "Lateral", "unit": "yd"},
    {"key": "spin", "group": "Ball", "label": "Spin Rate", "unit": "rpm"},
    {"key": "launch_angle", "group": "Ball", "label": "Launch Angle", "unit": "deg"},
    {"key": "shot_type", "group": null, "label": "Shot Type", "unit": null},
    {"key": "impact_horizontal", "group": "Impact", "label": "Impact H", "unit": "in"},
    {"key": "impact_vertical", "group": "Impact", "label": "Impact V", "unit": "in"}
  ],
  "shots": [
    {"shot_index": 1, "club_speed": 100, "ball_speed": 148, "carry": 240, "lateral": -3, "spin": 2600, "launch_angle": 12, "shot_type": "draw", "impact_horizontal": 0.1, "impact_vertical": 0},
    {"shot_index": 2, "club_speed": 102, "ball_speed": 151, "carry": 246, "lateral": 2, "spin": 2500, "launch_angle": 12.5, "shot_type": "fade", "impact_horizontal": -0.3, "impact_vertical": 0.2},
    {"shot_index": 3, "club_speed": 98, "ball_speed": 145, "carry": 236, "lateral": -6, "spin": 2800, "launch_angle": 11, "shot_type": "draw", "impact_horizontal": 0.5, "impact_vertical": -0.1},
    {"shot_index": 4, "club_speed": 101, "ball_speed": 150, "carry": 244, "lateral": 1, "spin": 2550, "launch_angle": 12.2, "shot_type": "straight", "impact_horizontal": 0, "impact_vertical": 0.1},
    {"shot_index": 5, "club_speed": 99, "ball_speed": 146, "carry": 238, "lateral": 4, "spin": 2700, "launch_angle": 11.5, "shot_type": "fade", "impact_horizontal": 0.2, "impact_vertical": 0},
    {"shot_index": 6, "club_speed": 103, "ball_speed": 153, "carry": 250, "lateral": 0, "spin": 2450, "launch_angle": 13, "shot_type": "straight", "impact_horizontal": -0.1, "impact_vertical": 0.3},
    {"shot_index": 7, "club_speed": 100, "ball_speed": 147, "carry": 241, "lateral": -2, "spin": 2650, "launch_angle": 11.8, "shot_type": "draw", "impact_horizontal": 0.35, "impact_vertical": -0.2},
    {"shot_index": 8, "club_speed": 90, "ball_speed": 120, "carry": 190, "lateral": 25, "spin": 3500, "launch_angle": 9, "shot_type": "slice", "impact_horizontal": 1.2, "impact_vertical": -0.5}
  ]
}`

func loadSession(t *testing.T) Input {
	t.Helper()
	var in Input
	require.NoError(t, json.Unmarshal([]byte(sessionJSON), &in))
	require.Len(t, in.Shots, 8)
	return in
}

func carryOnly(values ...float64) ([]shots.Column, []shots.Shot) {
	unit := "yd"
	cols := []shots.Column{{Key: "carry", Label: "Carry", Unit: &unit}}
	rows := make([]shots.Shot, len(values))
	for i, v := range values {
		rows[i] = shots.Shot{Values: map[string]shots.Value{"carry": shots.Num(v)}}
	}
	return cols, rows
}
