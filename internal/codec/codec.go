package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	two63 = 9223372036854775808.0
	two64 = 18446744073709551616.0
)

// Append packs values into dst according to l and returns the extended
// slice. len(values) must equal len(l).
func (l Layout) Append(dst []byte, values []float64) []byte {
	if len(values) != len(l) {
		panic(fmt.Sprintf("codec: %d values for %d fields", len(values), len(l)))
	}
	for i, f := range l {
		dst = f.Append(dst, values[i])
	}
	return dst
}

// Unpack decodes src into out, one value per field, consuming fields from
// the front of src in order. Trailing bytes are ignored.
//
// Unpack is all-or-nothing: if src is too short for any field it returns
// false and out is left untouched.
func (l Layout) Unpack(src []byte, out []float64) bool {
	if len(out) != len(l) {
		panic(fmt.Sprintf("codec: %d outputs for %d fields", len(out), len(l)))
	}
	if len(src) < l.Size() {
		return false
	}
	for i, f := range l {
		out[i] = f.Decode(src)
		src = src[f.Width():]
	}
	return true
}

func (o Order) binary() binary.AppendByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (o Order) reader() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Append encodes v as f and appends it to dst.
func (f Field) Append(dst []byte, v float64) []byte {
	bo := f.Order.binary()
	switch f.Type {
	case U8:
		return append(dst, uint8(saturateUnsigned(v, math.MaxUint8)))
	case I8:
		return append(dst, byte(int8(saturateSigned(v, math.MinInt8, math.MaxInt8))))
	case U16:
		return bo.AppendUint16(dst, uint16(saturateUnsigned(v, math.MaxUint16)))
	case I16:
		return bo.AppendUint16(dst, uint16(int16(saturateSigned(v, math.MinInt16, math.MaxInt16))))
	case U32:
		return bo.AppendUint32(dst, uint32(saturateUnsigned(v, math.MaxUint32)))
	case I32:
		return bo.AppendUint32(dst, uint32(int32(saturateSigned(v, math.MinInt32, math.MaxInt32))))
	case U64:
		return bo.AppendUint64(dst, toUint64(v))
	case I64:
		return bo.AppendUint64(dst, uint64(toInt64(v)))
	case F32:
		return bo.AppendUint32(dst, math.Float32bits(float32(v)))
	default:
		return bo.AppendUint64(dst, math.Float64bits(v))
	}
}

// Decode reads f from the front of src. src must hold at least f.Width()
// bytes.
func (f Field) Decode(src []byte) float64 {
	bo := f.Order.reader()
	switch f.Type {
	case U8:
		return float64(src[0])
	case I8:
		return float64(int8(src[0]))
	case U16:
		return float64(bo.Uint16(src))
	case I16:
		return float64(int16(bo.Uint16(src)))
	case U32:
		return float64(bo.Uint32(src))
	case I32:
		return float64(int32(bo.Uint32(src)))
	case U64:
		return float64(bo.Uint64(src))
	case I64:
		return float64(int64(bo.Uint64(src)))
	case F32:
		return float64(math.Float32frombits(bo.Uint32(src)))
	default:
		return math.Float64frombits(bo.Uint64(src))
	}
}

// Convert returns the value a field of type t stores for v: truncated toward
// zero and saturated for integers, rounded for F32.
func Convert(t Type, v float64) float64 {
	var buf [8]byte
	f := Field{Type: t, Order: BigEndian}
	return f.Decode(f.Append(buf[:0], v))
}

// saturateUnsigned truncates v toward zero and clamps it to [0, hi].
func saturateUnsigned(v, hi float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= hi:
		return hi
	}
	return math.Trunc(v)
}

// saturateSigned truncates v toward zero and clamps it to [lo, hi].
func saturateSigned(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= lo:
		return lo
	case v >= hi:
		return hi
	}
	return math.Trunc(v)
}

func toUint64(v float64) uint64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= two64:
		return math.MaxUint64
	}
	return uint64(v)
}

func toInt64(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= two63:
		return math.MaxInt64
	case v <= -two63:
		return math.MinInt64
	}
	return int64(v)
}
