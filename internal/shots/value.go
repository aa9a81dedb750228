// Package shots models the radar shot rows of a practice session: open
// metric maps whose values are numbers, strings or null, plus the column
// metadata describing where each metric came from.
package shots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the dynamic type held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Number
	String
)

// Value is one cell of a shot row.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric Value.
func Num(v float64) Value { return Value{kind: Number, num: v} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: String, str: s} }

// Kind reports the type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool { return v.kind == Null }

// Float returns the numeric value of v. It reports false for strings, nulls
// and non-finite numbers; strings are never parsed.
func (v Value) Float() (float64, bool) {
	if v.kind != Number || math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return 0, false
	}
	return v.num, true
}

// Text returns the string form of v: the string itself, a compact number,
// or "" for null.
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return ""
}

// MarshalJSON encodes numbers, strings and null. Non-finite numbers encode
// as null since JSON cannot carry them.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		if _, ok := v.Float(); !ok {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case String:
		return json.Marshal(v.str)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a JSON number, string, boolean or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Str(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Str(strconv.FormatBool(b))
	case '{', '[':
		return fmt.Errorf("unsupported shot value %s", data)
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid shot number %s: %w", data, err)
		}
		*v = Num(f)
	}
	return nil
}
