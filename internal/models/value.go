package models

import (
	"math"
	"strconv"
)

type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindInt
	KindFloat
	KindString
)

// Value is a single loosely typed cell. Raw always holds the text the cell
// was read from so tables can be written back out unchanged.
type Value struct {
	Kind  ValueKind
	Raw   string
	Int   int64
	Float float64
}

// ParseValue types a cell the way a spreadsheet reader would: integer first,
// then float, otherwise string. An empty cell is KindEmpty.
func ParseValue(s string) Value {
	if s == "" {
		return Value{Kind: KindEmpty}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Kind: KindInt, Raw: s, Int: i, Float: float64(i)}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Value{Kind: KindFloat, Raw: s, Float: f}
	}
	return Value{Kind: KindString, Raw: s}
}

func StringValue(s string) Value {
	if s == "" {
		return Value{Kind: KindEmpty}
	}
	return Value{Kind: KindString, Raw: s}
}

func (v Value) Text() string {
	return v.Raw
}

func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// Any returns the typed Go value: nil, int64, float64 or string.
func (v Value) Any() interface{} {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Raw
	default:
		return nil
	}
}
