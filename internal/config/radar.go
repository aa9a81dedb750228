package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical report defaults file.
const DefaultConfigPath = "config/radar.defaults.json"

// Chart keys of the report catalogue.
const (
	ChartDispersion        = "dispersion"
	ChartCarryVsBallSpeed  = "carry_vs_ball_speed"
	ChartSpinVsLaunch      = "spin_vs_launch"
	ChartFaceToPathLateral = "ftp_vs_lateral"
	ChartSpeedTrend        = "speed_trend"
	ChartCarryTrend        = "carry_trend"
	ChartSmashTrend        = "smash_trend"
	ChartCarryHist         = "carry_hist"
	ChartImpactHeatmap     = "impact_heatmap"
	ChartCorrelationMatrix = "correlation_matrix"
	ChartCarryModel        = "carry_model"
	ChartShotsTable        = "shots_table"
)

// ChartKeys lists every chart key in report order.
var ChartKeys = []string{
	ChartDispersion,
	ChartCarryVsBallSpeed,
	ChartSpinVsLaunch,
	ChartFaceToPathLateral,
	ChartSpeedTrend,
	ChartCarryTrend,
	ChartSmashTrend,
	ChartCarryHist,
	ChartImpactHeatmap,
	ChartCorrelationMatrix,
	ChartCarryModel,
	ChartShotsTable,
}

// AI narrative modes.
const (
	NarrativeOff      = "off"
	NarrativePerChart = "per-chart"
)

// Text syntaxes of AI supplied narratives.
const (
	SyntaxPlain    = "plain"
	SyntaxMarkdown = "markdown"
)

// RadarConfig is the report configuration. Every field is optional; the
// Get* accessors and Resolve apply defaults field by field so a partial
// override never drops nested keys.
type RadarConfig struct {
	Charts       map[string]bool `json:"charts,omitempty" yaml:"charts,omitempty"`
	Thresholds   *Thresholds     `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	Options      *Options        `json:"options,omitempty" yaml:"options,omitempty"`
	ShowSummary  *bool           `json:"showSummary,omitempty" yaml:"showSummary,omitempty"`
	ShowSegments *bool           `json:"showSegments,omitempty" yaml:"showSegments,omitempty"`
	ShowTable    *bool           `json:"showTable,omitempty" yaml:"showTable,omitempty"`
}

// Thresholds holds the lateral corridor tolerances in meters.
type Thresholds struct {
	LatCorridorMeters *[2]float64 `json:"latCorridorMeters,omitempty" yaml:"latCorridorMeters,omitempty"`
}

// Options carries narrative text supplied by an external writer.
type Options struct {
	AINarrative        *string           `json:"aiNarrative,omitempty" yaml:"aiNarrative,omitempty"`
	AINarratives       map[string]string `json:"aiNarratives,omitempty" yaml:"aiNarratives,omitempty"`
	AISelectionSummary *string           `json:"aiSelectionSummary,omitempty" yaml:"aiSelectionSummary,omitempty"`
	AISessionSummary   *string           `json:"aiSessionSummary,omitempty" yaml:"aiSessionSummary,omitempty"`
	AISyntax           *string           `json:"aiSyntax,omitempty" yaml:"aiSyntax,omitempty"`
	AISelectionKeys    []string          `json:"aiSelectionKeys,omitempty" yaml:"aiSelectionKeys,omitempty"`
	AIAnswers          map[string]string `json:"aiAnswers,omitempty" yaml:"aiAnswers,omitempty"`
}

// Helper functions to create pointers
func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }

// EmptyRadarConfig returns a RadarConfig with all fields unset.
func EmptyRadarConfig() *RadarConfig {
	return &RadarConfig{}
}

// DefaultRadarConfig returns the built-in defaults with every field set.
func DefaultRadarConfig() *RadarConfig {
	charts := make(map[string]bool, len(ChartKeys))
	for _, k := range ChartKeys {
		charts[k] = true
	}
	corridor := [2]float64{5, 10}
	return &RadarConfig{
		Charts:     charts,
		Thresholds: &Thresholds{LatCorridorMeters: &corridor},
		Options: &Options{
			AINarrative: ptrString(NarrativeOff),
			AISyntax:    ptrString(SyntaxPlain),
		},
		ShowSummary:  ptrBool(true),
		ShowSegments: ptrBool(true),
		ShowTable:    ptrBool(false),
	}
}

// LoadRadarConfig loads a RadarConfig from a .json, .yaml or .yml file of at
// most 1MB and validates it.
func LoadRadarConfig(path string) (*RadarConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := "json"
	if ext != ".json" {
		format = "yaml"
	}
	return ParseRadarConfig(data, format)
}

// ParseRadarConfig decodes and validates a config document. format is
// "json" or "yaml".
func ParseRadarConfig(data []byte, format string) (*RadarConfig, error) {
	cfg := EmptyRadarConfig()
	switch format {
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *RadarConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/swing-report/
	}
	for _, path := range candidates {
		if cfg, err := LoadRadarConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

func knownChart(key string) bool {
	for _, k := range ChartKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Validate checks that the configuration values are valid.
func (c *RadarConfig) Validate() error {
	if c == nil {
		return nil
	}
	for _, k := range sortedKeys(c.Charts) {
		if !knownChart(k) {
			return fmt.Errorf("unknown chart key %q", k)
		}
	}

	if c.Thresholds != nil && c.Thresholds.LatCorridorMeters != nil {
		lo, hi := c.Thresholds.LatCorridorMeters[0], c.Thresholds.LatCorridorMeters[1]
		if lo < 0 || hi <= 0 {
			return fmt.Errorf("latCorridorMeters must be positive, got [%g, %g]", lo, hi)
		}
		if lo > hi {
			return fmt.Errorf("latCorridorMeters low must not exceed high, got [%g, %g]", lo, hi)
		}
	}

	if o := c.Options; o != nil {
		if o.AINarrative != nil && *o.AINarrative != NarrativeOff && *o.AINarrative != NarrativePerChart {
			return fmt.Errorf("aiNarrative must be %q or %q, got %q", NarrativeOff, NarrativePerChart, *o.AINarrative)
		}
		if o.AISyntax != nil && *o.AISyntax != SyntaxPlain && *o.AISyntax != SyntaxMarkdown {
			return fmt.Errorf("aiSyntax must be %q or %q, got %q", SyntaxPlain, SyntaxMarkdown, *o.AISyntax)
		}
		for _, k := range o.AISelectionKeys {
			if !knownChart(k) {
				return fmt.Errorf("unknown chart key %q in aiSelectionKeys", k)
			}
		}
		for _, k := range sortedKeys(o.AINarratives) {
			if !knownChart(k) {
				return fmt.Errorf("unknown chart key %q in aiNarratives", k)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChartEnabled reports whether key is enabled. Charts are enabled unless
// explicitly switched off.
func (c *RadarConfig) ChartEnabled(key string) bool {
	if c == nil || c.Charts == nil {
		return true
	}
	on, ok := c.Charts[key]
	return !ok || on
}

// GetLatCorridorMeters returns the corridor tolerances or the default [5, 10].
func (c *RadarConfig) GetLatCorridorMeters() [2]float64 {
	if c == nil || c.Thresholds == nil || c.Thresholds.LatCorridorMeters == nil {
		return [2]float64{5, 10} // default
	}
	return *c.Thresholds.LatCorridorMeters
}

// GetAINarrative returns the AI narrative mode or the default "off".
func (c *RadarConfig) GetAINarrative() string {
	if c == nil || c.Options == nil || c.Options.AINarrative == nil {
		return NarrativeOff // default
	}
	return *c.Options.AINarrative
}

// GetAISyntax returns the narrative syntax or the default "plain".
func (c *RadarConfig) GetAISyntax() string {
	if c == nil || c.Options == nil || c.Options.AISyntax == nil {
		return SyntaxPlain // default
	}
	return *c.Options.AISyntax
}

// GetAISessionSummary returns the supplied session summary or "".
func (c *RadarConfig) GetAISessionSummary() string {
	if c == nil || c.Options == nil || c.Options.AISessionSummary == nil {
		return ""
	}
	return *c.Options.AISessionSummary
}

// GetAISelectionSummary returns the supplied selection summary or "".
func (c *RadarConfig) GetAISelectionSummary() string {
	if c == nil || c.Options == nil || c.Options.AISelectionSummary == nil {
		return ""
	}
	return *c.Options.AISelectionSummary
}

// GetShowSummary returns the showSummary value or the default true.
func (c *RadarConfig) GetShowSummary() bool {
	if c == nil || c.ShowSummary == nil {
		return true // default
	}
	return *c.ShowSummary
}

// GetShowSegments returns the showSegments value or the default true.
func (c *RadarConfig) GetShowSegments() bool {
	if c == nil || c.ShowSegments == nil {
		return true // default
	}
	return *c.ShowSegments
}

// GetShowTable returns the showTable value or the default false.
func (c *RadarConfig) GetShowTable() bool {
	if c == nil || c.ShowTable == nil {
		return false // default
	}
	return *c.ShowTable
}
