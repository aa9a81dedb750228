// Package analytics aggregates session statistics and assembles reports.
package analytics

import (
	"encoding/json"
	"fmt"

	"github.com/banshee-data/swing.report/internal/charts"
	"github.com/banshee-data/swing.report/internal/outliers"
	"github.com/banshee-data/swing.report/internal/stats"
)

// DefaultLocale is the locale of every generated text.
const DefaultLocale = "fr-FR"

// Segment summarises the shots sharing one value of a grouping dimension.
type Segment struct {
	Dimension string                   `json:"dimension"`
	Label     string                   `json:"label"`
	N         int                      `json:"n"`
	Stats     map[string]stats.Summary `json:"stats"`
}

// Derived holds values computed from several metrics.
type Derived struct {
	Corridors *stats.Corridor `json:"corridors"`
}

// Outliers carries the per-shot flags of a session.
type Outliers struct {
	Flags outliers.Flags `json:"flags"`
}

// Meta describes the session the analytics were computed for.
type Meta struct {
	Club   string            `json:"club,omitempty"`
	Shots  int               `json:"shots"`
	Units  map[string]string `json:"units"`
	Locale string            `json:"locale"`
}

// RadarAnalytics is the aggregate view of a session. ChartsData holds
// payloads computed upstream, keyed by chart key.
type RadarAnalytics struct {
	GlobalStats map[string]stats.Summary  `json:"globalStats"`
	Segments    []Segment                 `json:"segments"`
	Derived     Derived                   `json:"derived"`
	Outliers    Outliers                  `json:"outliers"`
	Meta        Meta                      `json:"meta"`
	ChartsData  map[string]charts.Payload `json:"chartsData,omitempty"`
}

// UnmarshalJSON decodes chart payloads by their type field.
func (a *RadarAnalytics) UnmarshalJSON(data []byte) error {
	type alias RadarAnalytics
	var raw struct {
		alias
		ChartsData map[string]json.RawMessage `json:"chartsData"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = RadarAnalytics(raw.alias)
	a.ChartsData = nil
	if len(raw.ChartsData) == 0 {
		return nil
	}
	a.ChartsData = make(map[string]charts.Payload, len(raw.ChartsData))
	for key, msg := range raw.ChartsData {
		if string(msg) == "null" {
			continue
		}
		p, err := charts.Decode(msg)
		if err != nil {
			return fmt.Errorf("chartsData[%s]: %w", key, err)
		}
		a.ChartsData[key] = p
	}
	return nil
}

// Precomputed returns the upstream payload for key, if any.
func (a *RadarAnalytics) Precomputed(key string) (charts.Payload, bool) {
	if a == nil {
		return nil, false
	}
	p, ok := a.ChartsData[key]
	return p, ok && p != nil
}
