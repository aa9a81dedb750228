// Package charts builds chart-ready payloads from shot rows. Builders are
// pure functions of their input and return nil when there is nothing to
// draw.
package charts

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates chart payloads. It is carried in the "type" JSON field.
type Kind string

const (
	KindScatter Kind = "scatter"
	KindLine    Kind = "line"
	KindHist    Kind = "hist"
	KindTable   Kind = "table"
	KindMatrix  Kind = "matrix"
	KindModel   Kind = "model"
	KindHeatmap Kind = "heatmap"
)

// Annotations holds text that may be precomputed alongside a payload.
type Annotations struct {
	Insight string `json:"insight,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Annotation returns the precomputed text of a payload.
func (a Annotations) Annotation() Annotations { return a }

// Payload is implemented by every chart payload type.
type Payload interface {
	Kind() Kind
	Annotation() Annotations
}

// Decode reads a payload whose concrete type is given by its "type" field.
func Decode(data []byte) (Payload, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode chart payload: %w", err)
	}

	var p Payload
	switch head.Type {
	case KindScatter:
		p = &ScatterPayload{}
	case KindLine:
		p = &LinePayload{}
	case KindHist:
		p = &HistPayload{}
	case KindTable:
		p = &TablePayload{}
	case KindMatrix:
		p = &MatrixPayload{}
	case KindModel:
		p = &ModelPayload{}
	case KindHeatmap:
		p = &HeatmapPayload{}
	default:
		return nil, fmt.Errorf("unknown chart payload type %q", head.Type)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", head.Type, err)
	}
	return p, nil
}
