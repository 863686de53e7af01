package prep

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind enumerates the runtime kinds a cell can hold.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "string"
	case KindBool:
		return "boolean"
	default:
		return "null"
	}
}

// Value is a single cell. The zero Value is Absent.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Absent() Value          { return Value{} }

// Text returns a string value. The empty string is a missing value and
// yields Absent.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, str: s}
}

func (v Value) Kind() Kind             { return v.kind }
func (v Value) IsAbsent() bool         { return v.kind == KindAbsent }
func (v Value) IsNumber() bool         { return v.kind == KindNumber }
func (v Value) IsText() bool           { return v.kind == KindText }
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }
func (v Value) Str() (string, bool)    { return v.str, v.kind == KindText }
func (v Value) Boolean() (bool, bool)  { return v.b, v.kind == KindBool }

// Equal reports structural equality. NaN equals NaN so that duplicate
// detection stays reflexive.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case KindText:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

// String renders the value the way it appears in derived column names.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// Any returns the value as a plain Go value (float64, string, bool or nil).
func (v Value) Any() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.str
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// FromAny converts a decoded scalar into a Value. ok is false for
// non-scalar input such as maps and slices.
func FromAny(x any) (v Value, ok bool) {
	switch t := x.(type) {
	case nil:
		return Absent(), true
	case float64:
		return Number(t), true
	case float32:
		return Number(float64(t)), true
	case int:
		return Number(float64(t)), true
	case int32:
		return Number(float64(t)), true
	case int64:
		return Number(float64(t)), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Text(t.String()), true
		}
		return Number(f), true
	case string:
		return Text(t), true
	case bool:
		return Bool(t), true
	case Value:
		return t, true
	default:
		return Absent(), false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.str)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	nv, ok := FromAny(x)
	if !ok {
		return fmt.Errorf("value is not a scalar: %s", b)
	}
	*v = nv
	return nil
}
