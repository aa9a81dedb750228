package config

// Merge overlays override on base field by field. Map entries are merged key
// by key so an override naming one chart keeps every other chart setting.
// Neither argument is modified; either may be nil.
func Merge(base, override *RadarConfig) *RadarConfig {
	out := EmptyRadarConfig()
	for _, c := range []*RadarConfig{base, override} {
		if c == nil {
			continue
		}
		out.Charts = mergeMap(out.Charts, c.Charts)
		if c.Thresholds != nil && c.Thresholds.LatCorridorMeters != nil {
			v := *c.Thresholds.LatCorridorMeters
			out.Thresholds = &Thresholds{LatCorridorMeters: &v}
		}
		if c.Options != nil {
			if out.Options == nil {
				out.Options = &Options{}
			}
			mergeOptions(out.Options, c.Options)
		}
		out.ShowSummary = pick(out.ShowSummary, c.ShowSummary)
		out.ShowSegments = pick(out.ShowSegments, c.ShowSegments)
		out.ShowTable = pick(out.ShowTable, c.ShowTable)
	}
	return out
}

func mergeOptions(dst, src *Options) {
	dst.AINarrative = pick(dst.AINarrative, src.AINarrative)
	dst.AINarratives = mergeMap(dst.AINarratives, src.AINarratives)
	dst.AISelectionSummary = pick(dst.AISelectionSummary, src.AISelectionSummary)
	dst.AISessionSummary = pick(dst.AISessionSummary, src.AISessionSummary)
	dst.AISyntax = pick(dst.AISyntax, src.AISyntax)
	if src.AISelectionKeys != nil {
		dst.AISelectionKeys = append([]string(nil), src.AISelectionKeys...)
	}
	dst.AIAnswers = mergeMap(dst.AIAnswers, src.AIAnswers)
}

func pick[T any](cur, next *T) *T {
	if next == nil {
		return cur
	}
	v := *next
	return &v
}

func mergeMap[V any](dst, src map[string]V) map[string]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Settings is a fully resolved configuration.
type Settings struct {
	Charts             map[string]bool   `json:"charts"`
	LatCorridorMeters  [2]float64        `json:"latCorridorMeters"`
	AINarrative        string            `json:"aiNarrative"`
	AINarratives       map[string]string `json:"aiNarratives,omitempty"`
	AISelectionSummary string            `json:"aiSelectionSummary,omitempty"`
	AISessionSummary   string            `json:"aiSessionSummary,omitempty"`
	AISyntax           string            `json:"aiSyntax"`
	AISelectionKeys    []string          `json:"aiSelectionKeys,omitempty"`
	AIAnswers          map[string]string `json:"aiAnswers,omitempty"`
	ShowSummary        bool              `json:"showSummary"`
	ShowSegments       bool              `json:"showSegments"`
	ShowTable          bool              `json:"showTable"`
}

// Resolve applies every default and returns the flat settings.
func (c *RadarConfig) Resolve() Settings {
	s := Settings{
		Charts:             make(map[string]bool, len(ChartKeys)),
		LatCorridorMeters:  c.GetLatCorridorMeters(),
		AINarrative:        c.GetAINarrative(),
		AISelectionSummary: c.GetAISelectionSummary(),
		AISessionSummary:   c.GetAISessionSummary(),
		AISyntax:           c.GetAISyntax(),
		ShowSummary:        c.GetShowSummary(),
		ShowSegments:       c.GetShowSegments(),
		ShowTable:          c.GetShowTable(),
	}
	for _, k := range ChartKeys {
		s.Charts[k] = c.ChartEnabled(k)
	}
	if c != nil && c.Options != nil {
		s.AINarratives = mergeMap(nil, c.Options.AINarratives)
		s.AISelectionKeys = append([]string(nil), c.Options.AISelectionKeys...)
		s.AIAnswers = mergeMap(nil, c.Options.AIAnswers)
	}
	return s
}
