package signal

import (
	"fmt"
	"strings"
)

// Scalar is the closed set of primitive kinds a signal element may have.
type Scalar interface {
	bool | uint8 | int8 | uint16 | int16 | uint32 | int32 | float32 | float64
}

// Numeric is Scalar without bool: the kinds that support + - * /.
type Numeric interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | float32 | float64
}

// Float is the subset of Numeric with a fractional part.
type Float interface {
	float32 | float64
}

// Kind identifies a Scalar kind at runtime.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindF32
	KindF64
)

// Kinds lists every scalar kind in declaration order.
var Kinds = []Kind{KindBool, KindU8, KindI8, KindU16, KindI16, KindU32, KindI32, KindF32, KindF64}

var kindNames = [...]string{
	KindBool: "bool",
	KindU8:   "u8",
	KindI8:   "i8",
	KindU16:  "u16",
	KindI16:  "i16",
	KindU32:  "u32",
	KindI32:  "i32",
	KindF32:  "f32",
	KindF64:  "f64",
}

// String returns the short lowercase name of the kind ("u8", "f64", ...).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// IsFloat reports whether k is f32 or f64.
func (k Kind) IsFloat() bool {
	return k == KindF32 || k == KindF64
}

// IsSigned reports whether k can hold negative values.
func (k Kind) IsSigned() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindF32, KindF64:
		return true
	}
	return false
}

// ParseKind parses a kind name as produced by Kind.String.
// Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown scalar kind %q", s)
}

// KindOf returns the Kind of the type parameter.
func KindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case uint8:
		return KindU8
	case int8:
		return KindI8
	case uint16:
		return KindU16
	case int16:
		return KindI16
	case uint32:
		return KindU32
	case int32:
		return KindI32
	case float32:
		return KindF32
	default:
		return KindF64
	}
}

// Zero returns the zero value of T.
func Zero[T Scalar]() T {
	var zero T
	return zero
}

// IsTruthy reports whether v differs from the zero value of its kind.
func IsTruthy[T Scalar](v T) bool {
	var zero T
	return v != zero
}

// ToFloat64 widens v to float64. Every Scalar kind converts exactly;
// bool maps to 0 or 1.
func ToFloat64[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case uint8:
		return float64(x)
	case int8:
		return float64(x)
	case uint16:
		return float64(x)
	case int16:
		return float64(x)
	case uint32:
		return float64(x)
	case int32:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

// FromFloat64 narrows f to T using Go conversion rules.
// For bool, any non-zero value is true.
func FromFloat64[T Scalar](f float64) T {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = f != 0
	case *uint8:
		*p = uint8(f)
	case *int8:
		*p = int8(f)
	case *uint16:
		*p = uint16(f)
	case *int16:
		*p = int16(f)
	case *uint32:
		*p = uint32(f)
	case *int32:
		*p = int32(f)
	case *float32:
		*p = float32(f)
	case *float64:
		*p = f
	}
	return out
}
