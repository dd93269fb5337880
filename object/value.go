// Package object defines the runtime values operated on by the Fern VM.
//
// A Value is a tagged scalar: a discriminant plus a payload for one of a
// closed set of representations. Values are copied by value and have no
// identity beyond their tag and payload. There are no heap graphs and
// therefore nothing to garbage collect.
package object

import (
	"fmt"
	"strconv"
)

// Type is the type of a Value as a string.
type Type string

const (
	NONE   Type = "none"
	INT    Type = "int"
	FLOAT  Type = "float"
	BOOL   Type = "bool"
	STRING Type = "string"
)

// Value is a tagged runtime value.
type Value struct {
	typ Type
	i   int64
	f   float64
	b   bool
	s   string
}

// None is the zero Value.
var None = Value{typ: NONE}

// NewInt returns an int Value.
func NewInt(v int64) Value {
	return Value{typ: INT, i: v}
}

// NewFloat returns a float Value.
func NewFloat(v float64) Value {
	return Value{typ: FLOAT, f: v}
}

// NewBool returns a bool Value.
func NewBool(v bool) Value {
	return Value{typ: BOOL, b: v}
}

// NewString returns a string Value.
func NewString(v string) Value {
	return Value{typ: STRING, s: v}
}

// Type returns the discriminant identifying the value's representation.
// The zero Value has type NONE.
func (v Value) Type() Type {
	if v.typ == "" {
		return NONE
	}
	return v.typ
}

// Int returns the int payload. It is only meaningful when Type() is INT.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. It is only meaningful when Type() is FLOAT.
func (v Value) Float() float64 { return v.f }

// Bool returns the bool payload. It is only meaningful when Type() is BOOL.
func (v Value) Bool() bool { return v.b }

// Str returns the string payload. It is only meaningful when Type() is STRING.
func (v Value) Str() string { return v.s }

// IsNumeric reports whether the value is an int or a float.
func (v Value) IsNumeric() bool {
	return v.typ == INT || v.typ == FLOAT
}

// AsFloat returns the value widened to a float64. Ints widen; floats are
// returned unchanged. Calling AsFloat on a non-numeric value returns 0.
func (v Value) AsFloat() float64 {
	switch v.typ {
	case INT:
		return float64(v.i)
	case FLOAT:
		return v.f
	}
	return 0
}

// Inspect returns a string representation of the value, suitable for
// display to a user.
func (v Value) Inspect() string {
	switch v.Type() {
	case INT:
		return strconv.FormatInt(v.i, 10)
	case FLOAT:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case BOOL:
		return strconv.FormatBool(v.b)
	case STRING:
		return v.s
	default:
		return "none"
	}
}

// String implements fmt.Stringer. Strings are quoted to distinguish them
// from other value types; use Inspect for raw display.
func (v Value) String() string {
	if v.Type() == STRING {
		return fmt.Sprintf("%q", v.s)
	}
	return v.Inspect()
}

// Equals reports whether two values have the same tag and payload, with
// int/float compared numerically after widening.
func (v Value) Equals(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		if v.typ == INT && other.typ == INT {
			return v.i == other.i
		}
		return v.AsFloat() == other.AsFloat()
	}
	if v.Type() != other.Type() {
		return false
	}
	switch v.Type() {
	case BOOL:
		return v.b == other.b
	case STRING:
		return v.s == other.s
	default:
		return true // NONE == NONE
	}
}
