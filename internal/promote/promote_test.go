package promote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/signal"
)

func TestOutput_Identity(t *testing.T) {
	for _, k := range signal.Kinds {
		out, err := Output(k, k)
		require.NoError(t, err)
		assert.Equal(t, k, out, "Promote(%s,%s)", k, k)
	}
}

func TestOutput_Symmetric(t *testing.T) {
	for _, l := range signal.Kinds {
		for _, r := range signal.Kinds {
			assert.Equal(t, MustOutput(l, r), MustOutput(r, l), "pair (%s,%s)", l, r)
		}
	}
}

func TestOutput_Lossless(t *testing.T) {
	for _, l := range signal.Kinds {
		for _, r := range signal.Kinds {
			out := MustOutput(l, r)
			assert.True(t, Exact(l, out), "%s must widen into %s", l, out)
			assert.True(t, Exact(r, out), "%s must widen into %s", r, out)
		}
	}
}

func TestOutput_KnownPairs(t *testing.T) {
	tests := []struct {
		l, r signal.Kind
		want signal.Kind
	}{
		{signal.KindU8, signal.KindF32, signal.KindF32},
		{signal.KindU16, signal.KindF32, signal.KindF32},
		{signal.KindF32, signal.KindF64, signal.KindF64},
		{signal.KindU8, signal.KindI8, signal.KindI16},
		{signal.KindU16, signal.KindI8, signal.KindI32},
		{signal.KindU16, signal.KindI16, signal.KindI32},
		{signal.KindU32, signal.KindI32, signal.KindF64},
		{signal.KindI32, signal.KindF32, signal.KindF64},
		{signal.KindBool, signal.KindU8, signal.KindU8},
	}
	for _, tt := range tests {
		t.Run(tt.l.String()+"_"+tt.r.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MustOutput(tt.l, tt.r))
		})
	}
}

func TestOutput_InvalidKind(t *testing.T) {
	_, err := Output(signal.Kind(99), signal.KindF64)
	assert.Error(t, err)
	assert.Panics(t, func() { MustOutput(signal.KindF64, signal.Kind(99)) })
}

func TestSame_IsIdentity(t *testing.T) {
	l, r := Apply[int16, int16, int16, Same[int16]](-7, 12)
	assert.Equal(t, int16(-7), l)
	assert.Equal(t, int16(12), r)
}

// checkPair verifies a typed pair agrees with the kind table and that
// boundary values survive a trip through the output kind.
func checkPair[L, R, O signal.Numeric, P Pair[L, R, O]](t *testing.T, ls []L, rs []R) {
	t.Helper()
	assert.Equal(t, MustOutput(signal.KindOf[L](), signal.KindOf[R]()), signal.KindOf[O]())

	var p P
	for _, l := range ls {
		assert.Equal(t, l, L(p.Left(l)), "left %v", l)
	}
	for _, r := range rs {
		assert.Equal(t, r, R(p.Right(r)), "right %v", r)
	}
}

func TestPairs_AgreeWithTableAndRoundTrip(t *testing.T) {
	u8 := []uint8{0, 1, math.MaxUint8}
	i8 := []int8{math.MinInt8, -1, 0, math.MaxInt8}
	u16 := []uint16{0, 1, math.MaxUint16}
	i16 := []int16{math.MinInt16, -1, 0, math.MaxInt16}
	u32 := []uint32{0, 1, math.MaxUint32}
	i32 := []int32{math.MinInt32, -1, 0, math.MaxInt32}
	f32 := []float32{0, -1, math.MaxFloat32, math.SmallestNonzeroFloat32}
	f64 := []float64{0, -1, math.MaxFloat64}

	checkPair[uint8, float32, float32, U8F32](t, u8, f32)
	checkPair[float32, uint8, float32, F32U8](t, f32, u8)
	checkPair[int8, float32, float32, I8F32](t, i8, f32)
	checkPair[float32, int8, float32, F32I8](t, f32, i8)
	checkPair[uint16, float32, float32, U16F32](t, u16, f32)
	checkPair[float32, uint16, float32, F32U16](t, f32, u16)
	checkPair[int16, float32, float32, I16F32](t, i16, f32)
	checkPair[float32, int16, float32, F32I16](t, f32, i16)
	checkPair[float32, float64, float64, F32F64](t, f32, f64)
	checkPair[float64, float32, float64, F64F32](t, f64, f32)
	checkPair[uint8, float64, float64, U8F64](t, u8, f64)
	checkPair[float64, uint8, float64, F64U8](t, f64, u8)
	checkPair[int8, float64, float64, I8F64](t, i8, f64)
	checkPair[float64, int8, float64, F64I8](t, f64, i8)
	checkPair[uint16, float64, float64, U16F64](t, u16, f64)
	checkPair[float64, uint16, float64, F64U16](t, f64, u16)
	checkPair[int16, float64, float64, I16F64](t, i16, f64)
	checkPair[float64, int16, float64, F64I16](t, f64, i16)
	checkPair[uint32, float64, float64, U32F64](t, u32, f64)
	checkPair[float64, uint32, float64, F64U32](t, f64, u32)
	checkPair[int32, float64, float64, I32F64](t, i32, f64)
	checkPair[float64, int32, float64, F64I32](t, f64, i32)
	checkPair[uint8, uint16, uint16, U8U16](t, u8, u16)
	checkPair[uint16, uint8, uint16, U16U8](t, u16, u8)
	checkPair[uint8, int16, int16, U8I16](t, u8, i16)
	checkPair[int16, uint8, int16, I16U8](t, i16, u8)
	checkPair[int8, int16, int16, I8I16](t, i8, i16)
	checkPair[int16, int8, int16, I16I8](t, i16, i8)
	checkPair[uint16, int32, int32, U16I32](t, u16, i32)
	checkPair[int32, uint16, int32, I32U16](t, i32, u16)
	checkPair[int16, int32, int32, I16I32](t, i16, i32)
	checkPair[int32, int16, int32, I32I16](t, i32, i16)
}
