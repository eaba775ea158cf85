// Package values provides a small tagged-variant value type used for
// heterogeneous statistical context and chunk metadata. It replaces the
// untyped maps a dynamic language would use while keeping JSON output
// identical to plain JSON values.
package values

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindMap
	KindList
)

// Value holds exactly one of: string, number, bool, nested map, or list.
// The zero value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	m    map[string]Value
	list []Value
}

// String creates a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int creates a numeric Value from an int.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

// Bool creates a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Map creates a nested map Value.
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// List creates a list Value.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Strings creates a list Value from string elements.
func Strings(items []string) Value {
	list := make([]Value, len(items))
	for i, s := range items {
		list[i] = String(s)
	}
	return Value{kind: KindList, list: list}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload. Valid only for KindNumber.
func (v Value) Num() float64 { return v.num }

// BoolVal returns the boolean payload. Valid only for KindBool.
func (v Value) BoolVal() bool { return v.b }

// MapVal returns the nested map payload. Valid only for KindMap.
func (v Value) MapVal() map[string]Value { return v.m }

// ListVal returns the list payload. Valid only for KindList.
func (v Value) ListVal() []Value { return v.list }

// MarshalJSON emits the plain JSON value, not a wrapper object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindMap:
		return json.Marshal(v.m)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// UnmarshalJSON reconstructs the variant from a plain JSON value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return String(""), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			val, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			m[k] = val
		}
		return Map(m), nil
	case []any:
		list := make([]Value, len(t))
		for i, item := range t {
			val, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			list[i] = val
		}
		return Value{kind: KindList, list: list}, nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value type %T", raw)
	}
}
