// Package rowdata models a single PO's scalar data and the typed value
// union the expression evaluator and stage resolver operate on.
package rowdata

import "time"

// Kind discriminates the scalar kinds a Value can hold.
type Kind int

const (
	// KindNull is the zero value: absent, unparseable, or explicitly null.
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindInstant
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindInstant:
		return "instant"
	default:
		return "unknown"
	}
}

// Value is the tagged scalar union flowing through row lookups and
// expression evaluation: null, bool, number, string, or a calendar-day
// instant. The zero Value is Null.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	instant time.Time
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number wraps a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Instant wraps a calendar-day instant, truncated to UTC midnight so that
// day arithmetic is exact (§9: "perform on calendar days at midnight").
func Instant(t time.Time) Value {
	return Value{kind: KindInstant, instant: truncateToDay(t)}
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Kind reports which alternative of the union is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null alternative.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; ok is false for non-bool values.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.boolean, true
}

// AsNumber returns the numeric payload; ok is false for non-number values.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.number, true
}

// AsString returns the string payload; ok is false for non-string values.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsInstant returns the instant payload; ok is false for non-instant values.
func (v Value) AsInstant() (time.Time, bool) {
	if v.kind != KindInstant {
		return time.Time{}, false
	}
	return v.instant, true
}

// Truthy reports whether the value counts as true when used as a
// condition: non-zero numbers, non-empty strings, true booleans, and
// non-null instants are truthy; null and false/zero/empty are not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number != 0
	case KindString:
		return v.str != ""
	case KindInstant:
		return true
	default:
		return false
	}
}

// Equal reports value equality used by the comparison operators. Comparing
// across kinds yields false rather than a type error, matching the "either
// side null yields false" rule generalized to "either side not comparable
// yields false".
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number == other.number
	case KindString:
		return v.str == other.str
	case KindInstant:
		return v.instant.Equal(other.instant)
	default:
		return false
	}
}
