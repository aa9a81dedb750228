package shots

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IndexKey is the reserved row key carrying the 1-based shot number.
const IndexKey = "shot_index"

// Shot is one recorded swing. Index is the 1-based shot number supplied by
// the source, or 0 when the source did not provide one.
type Shot struct {
	Index  int
	Values map[string]Value
}

// Get returns the value stored under key, or a null Value.
func (s Shot) Get(key string) Value {
	if s.Values == nil {
		return Value{}
	}
	return s.Values[key]
}

// Float returns the finite number stored under key.
func (s Shot) Float(key string) (float64, bool) {
	return s.Get(key).Float()
}

// Numbering returns the shot number of each row, used for cross-referencing:
// the row's own index when present. Rows without one are numbered in order
// after the highest explicit index, so a session with no indices reads
// 1, 2, 3...
func Numbering(rows []Shot) []int {
	next := 0
	for _, s := range rows {
		next = max(next, s.Index)
	}
	out := make([]int, len(rows))
	for i, s := range rows {
		if s.Index > 0 {
			out[i] = s.Index
			continue
		}
		next++
		out[i] = next
	}
	return out
}

// MarshalJSON flattens the shot into a single object. Keys are emitted in
// sorted order by encoding/json.
func (s Shot) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Values)+1)
	for k, v := range s.Values {
		m[k] = v
	}
	if s.Index > 0 {
		m[IndexKey] = s.Index
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads a flat shot object. shot_index may be a number or a
// numeric string.
func (s *Shot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode shot: %w", err)
	}
	out := Shot{Values: make(map[string]Value, len(raw))}
	for k, msg := range raw {
		var v Value
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("decode shot field %q: %w", k, err)
		}
		if k == IndexKey {
			out.Index = parseIndex(v)
			continue
		}
		out.Values[k] = v
	}
	*s = out
	return nil
}

func parseIndex(v Value) int {
	if f, ok := v.Float(); ok && f >= 1 && f == math.Trunc(f) {
		return int(f)
	}
	if v.Kind() == String {
		if n, err := strconv.Atoi(strings.TrimSpace(v.Text())); err == nil && n >= 1 {
			return n
		}
	}
	return 0
}

// Column describes one metric's provenance and display unit.
type Column struct {
	Key   string  `json:"key"`
	Group *string `json:"group"`
	Label string  `json:"label"`
	Unit  *string `json:"unit"`
}

// UnitName returns the column unit or "" when absent.
func (c *Column) UnitName() string {
	if c == nil || c.Unit == nil {
		return ""
	}
	return *c.Unit
}

// GroupName returns the column group or "" when absent.
func (c *Column) GroupName() string {
	if c == nil || c.Group == nil {
		return ""
	}
	return *c.Group
}

// Numbers returns the finite values stored under key in shot order.
func Numbers(shots []Shot, key string) []float64 {
	out := make([]float64, 0, len(shots))
	for _, s := range shots {
		if v, ok := s.Float(key); ok {
			out = append(out, v)
		}
	}
	return out
}

// Series returns the finite values stored under key along with the shot
// number of each value.
func Series(shots []Shot, key string) (values []float64, indices []int) {
	nums := Numbering(shots)
	for i, s := range shots {
		if v, ok := s.Float(key); ok {
			values = append(values, v)
			indices = append(indices, nums[i])
		}
	}
	return values, indices
}

// Pairs returns the shots where both xKey and yKey hold finite numbers.
func Pairs(shots []Shot, xKey, yKey string) (xs, ys []float64, indices []int) {
	nums := Numbering(shots)
	for i, s := range shots {
		x, okX := s.Float(xKey)
		y, okY := s.Float(yKey)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
			indices = append(indices, nums[i])
		}
	}
	return xs, ys, indices
}
