// Package codec packs scalar fields into byte streams and unpacks them.
//
// A Layout is 1 to 8 fields, each a numeric type plus byte order, written
// back-to-back with no padding. This is the literal wire layout bus and
// serial adapters exchange.
//
// Values travel as float64 on the block side. Packing into an integer field
// truncates toward zero and saturates at the field's range (NaN becomes 0,
// negatives become 0 in unsigned fields). 64-bit integer fields decode to
// the nearest float64.
package codec

import (
	"fmt"
	"strings"

	"github.com/roach88/blockrt/internal/block"
)

// MaxFields is the most fields a Layout may hold.
const MaxFields = 8

// Type is a field's primitive numeric type.
type Type uint8

const (
	U8 Type = iota
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
)

var typeNames = [...]string{
	U8: "U8", I8: "I8", U16: "U16", I16: "I16", U32: "U32",
	I32: "I32", U64: "U64", I64: "I64", F32: "F32", F64: "F64",
}

var typeWidths = [...]int{
	U8: 1, I8: 1, U16: 2, I16: 2, U32: 4, I32: 4, U64: 8, I64: 8, F32: 4, F64: 8,
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Width returns the encoded size in bytes.
func (t Type) Width() int {
	return typeWidths[t]
}

// Order is a field's byte order.
type Order uint8

const (
	BigEndian Order = iota
	LittleEndian
)

func (o Order) String() string {
	if o == LittleEndian {
		return "LittleEndian"
	}
	return "BigEndian"
}

// Field is one entry of a Layout.
type Field struct {
	Type  Type
	Order Order
}

// Width returns the encoded size in bytes.
func (f Field) Width() int {
	return f.Type.Width()
}

// String renders the field in the form ParseField accepts.
func (f Field) String() string {
	return f.Type.String() + ":" + f.Order.String()
}

// ParseField parses "TYPE:ORDER", for example "I16:LittleEndian".
// Names are matched case-insensitively.
func ParseField(s string) (Field, error) {
	typ, order, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Field{}, fmt.Errorf("field %q: want TYPE:ORDER", s)
	}

	var f Field
	found := false
	for i, name := range typeNames {
		if strings.EqualFold(name, typ) {
			f.Type = Type(i)
			found = true
			break
		}
	}
	if !found {
		return Field{}, fmt.Errorf("field %q: unknown type %q", s, typ)
	}

	switch {
	case strings.EqualFold(order, "BigEndian"):
		f.Order = BigEndian
	case strings.EqualFold(order, "LittleEndian"):
		f.Order = LittleEndian
	default:
		return Field{}, fmt.Errorf("field %q: unknown byte order %q", s, order)
	}
	return f, nil
}

// Layout is an ordered list of fields.
type Layout []Field

// ParseLayout parses 1 to MaxFields field specifications.
func ParseLayout(specs []string) (Layout, error) {
	if len(specs) == 0 || len(specs) > MaxFields {
		return nil, fmt.Errorf("layout needs 1 to %d fields, got %d", MaxFields, len(specs))
	}
	l := make(Layout, len(specs))
	for i, s := range specs {
		f, err := ParseField(s)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		l[i] = f
	}
	return l, nil
}

// MustParseLayout is ParseLayout for block construction: a malformed layout
// panics with a *block.ConfigError.
func MustParseLayout(param string, specs []string) Layout {
	l, err := ParseLayout(specs)
	if err != nil {
		block.PanicConfig(block.ErrCodeInvalidCodec, param, "%v", err)
	}
	return l
}

// Size returns the total encoded size in bytes.
func (l Layout) Size() int {
	n := 0
	for _, f := range l {
		n += f.Width()
	}
	return n
}

// Strings renders each field in ParseField form.
func (l Layout) Strings() []string {
	out := make([]string, len(l))
	for i, f := range l {
		out[i] = f.String()
	}
	return out
}
