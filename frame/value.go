package frame

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type (
	Kind uint8

	// Value is a single cell. The zero Value is the missing-value marker.
	Value struct {
		kind Kind
		text string
		num  float64
		i    int64
		list []Value
	}
)

const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindInt
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindInt:
		return "int"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

func Missing() Value {
	return Value{}
}

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a float cell, NaN is treated as missing
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// List returns a list cell. An empty list is still a list, not missing.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsNumber returns the value as a float for both Number and Int cells
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// String renders the value the way it is shown to people. Missing renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindList:
		return "[" + JoinList(v.list, ", ") + "]"
	default:
		return ""
	}
}

// Key is a comparable identity used for distinct counting. Int and integral
// Number cells with the same magnitude share a key.
func (v Value) Key() string {
	switch v.kind {
	case KindText:
		return "t:" + v.text
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1<<63 {
			return "n:" + strconv.FormatInt(int64(v.num), 10)
		}
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindInt:
		return "n:" + strconv.FormatInt(v.i, 10)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Key()
		}
		return "l:[" + strings.Join(parts, "\x1f") + "]"
	default:
		return "m:"
	}
}

// Interface converts the value to plain Go types suitable for JSON
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	case KindInt:
		return v.i
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromInterface converts decoded JSON (or plain Go) values to a Value. Booleans
// become Int 0/1, unknown types fall back to their fmt representation.
func FromInterface(x any) Value {
	switch val := x.(type) {
	case nil:
		return Missing()
	case Value:
		return val
	case string:
		return Text(val)
	case *string:
		if val == nil {
			return Missing()
		}
		return Text(*val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i)
		}
		f, err := val.Float64()
		if err != nil {
			return Text(val.String())
		}
		return Number(f)
	case bool:
		if val {
			return Int(1)
		}
		return Int(0)
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = FromInterface(item)
		}
		return List(items...)
	case []string:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = Text(item)
		}
		return List(items...)
	default:
		return Text(fmt.Sprint(val))
	}
}

// JoinList joins the string form of each item with sep
func JoinList(items []Value, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, sep)
}
