package promote

import "github.com/roach88/blockrt/internal/signal"

// Pair converts a left operand of kind L and a right operand of kind R into
// their common kind O. Implementations are zero-size; call them through a
// zero value of the type parameter.
type Pair[L, R, O signal.Scalar] interface {
	Left(L) O
	Right(R) O
}

// Same is the identity pair (T, T) -> T.
type Same[T signal.Scalar] struct{}

func (Same[T]) Left(v T) T { return v }
func (Same[T]) Right(v T) T { return v }

// Apply promotes both operands through P.
func Apply[L, R, O signal.Scalar, P Pair[L, R, O]](l L, r R) (O, O) {
	var p P
	return p.Left(l), p.Right(r)
}

// U8F32 promotes (uint8, float32) to float32.
type U8F32 struct{}

func (U8F32) Left(v uint8) float32 { return float32(v) }
func (U8F32) Right(v float32) float32 { return v }

// F32U8 promotes (float32, uint8) to float32.
type F32U8 struct{}

func (F32U8) Left(v float32) float32 { return v }
func (F32U8) Right(v uint8) float32 { return float32(v) }

// I8F32 promotes (int8, float32) to float32.
type I8F32 struct{}

func (I8F32) Left(v int8) float32 { return float32(v) }
func (I8F32) Right(v float32) float32 { return v }

// F32I8 promotes (float32, int8) to float32.
type F32I8 struct{}

func (F32I8) Left(v float32) float32 { return v }
func (F32I8) Right(v int8) float32 { return float32(v) }

// U16F32 promotes (uint16, float32) to float32.
type U16F32 struct{}

func (U16F32) Left(v uint16) float32 { return float32(v) }
func (U16F32) Right(v float32) float32 { return v }

// F32U16 promotes (float32, uint16) to float32.
type F32U16 struct{}

func (F32U16) Left(v float32) float32 { return v }
func (F32U16) Right(v uint16) float32 { return float32(v) }

// I16F32 promotes (int16, float32) to float32.
type I16F32 struct{}

func (I16F32) Left(v int16) float32 { return float32(v) }
func (I16F32) Right(v float32) float32 { return v }

// F32I16 promotes (float32, int16) to float32.
type F32I16 struct{}

func (F32I16) Left(v float32) float32 { return v }
func (F32I16) Right(v int16) float32 { return float32(v) }

// F32F64 promotes (float32, float64) to float64.
type F32F64 struct{}

func (F32F64) Left(v float32) float64 { return float64(v) }
func (F32F64) Right(v float64) float64 { return v }

// F64F32 promotes (float64, float32) to float64.
type F64F32 struct{}

func (F64F32) Left(v float64) float64 { return v }
func (F64F32) Right(v float32) float64 { return float64(v) }

// U8F64 promotes (uint8, float64) to float64.
type U8F64 struct{}

func (U8F64) Left(v uint8) float64 { return float64(v) }
func (U8F64) Right(v float64) float64 { return v }

// F64U8 promotes (float64, uint8) to float64.
type F64U8 struct{}

func (F64U8) Left(v float64) float64 { return v }
func (F64U8) Right(v uint8) float64 { return float64(v) }

// I8F64 promotes (int8, float64) to float64.
type I8F64 struct{}

func (I8F64) Left(v int8) float64 { return float64(v) }
func (I8F64) Right(v float64) float64 { return v }

// F64I8 promotes (float64, int8) to float64.
type F64I8 struct{}

func (F64I8) Left(v float64) float64 { return v }
func (F64I8) Right(v int8) float64 { return float64(v) }

// U16F64 promotes (uint16, float64) to float64.
type U16F64 struct{}

func (U16F64) Left(v uint16) float64 { return float64(v) }
func (U16F64) Right(v float64) float64 { return v }

// F64U16 promotes (float64, uint16) to float64.
type F64U16 struct{}

func (F64U16) Left(v float64) float64 { return v }
func (F64U16) Right(v uint16) float64 { return float64(v) }

// I16F64 promotes (int16, float64) to float64.
type I16F64 struct{}

func (I16F64) Left(v int16) float64 { return float64(v) }
func (I16F64) Right(v float64) float64 { return v }

// F64I16 promotes (float64, int16) to float64.
type F64I16 struct{}

func (F64I16) Left(v float64) float64 { return v }
func (F64I16) Right(v int16) float64 { return float64(v) }

// U32F64 promotes (uint32, float64) to float64.
type U32F64 struct{}

func (U32F64) Left(v uint32) float64 { return float64(v) }
func (U32F64) Right(v float64) float64 { return v }

// F64U32 promotes (float64, uint32) to float64.
type F64U32 struct{}

func (F64U32) Left(v float64) float64 { return v }
func (F64U32) Right(v uint32) float64 { return float64(v) }

// I32F64 promotes (int32, float64) to float64.
type I32F64 struct{}

func (I32F64) Left(v int32) float64 { return float64(v) }
func (I32F64) Right(v float64) float64 { return v }

// F64I32 promotes (float64, int32) to float64.
type F64I32 struct{}

func (F64I32) Left(v float64) float64 { return v }
func (F64I32) Right(v int32) float64 { return float64(v) }

// U8U16 promotes (uint8, uint16) to uint16.
type U8U16 struct{}

func (U8U16) Left(v uint8) uint16 { return uint16(v) }
func (U8U16) Right(v uint16) uint16 { return v }

// U16U8 promotes (uint16, uint8) to uint16.
type U16U8 struct{}

func (U16U8) Left(v uint16) uint16 { return v }
func (U16U8) Right(v uint8) uint16 { return uint16(v) }

// U8I16 promotes (uint8, int16) to int16.
type U8I16 struct{}

func (U8I16) Left(v uint8) int16 { return int16(v) }
func (U8I16) Right(v int16) int16 { return v }

// I16U8 promotes (int16, uint8) to int16.
type I16U8 struct{}

func (I16U8) Left(v int16) int16 { return v }
func (I16U8) Right(v uint8) int16 { return int16(v) }

// I8I16 promotes (int8, int16) to int16.
type I8I16 struct{}

func (I8I16) Left(v int8) int16 { return int16(v) }
func (I8I16) Right(v int16) int16 { return v }

// I16I8 promotes (int16, int8) to int16.
type I16I8 struct{}

func (I16I8) Left(v int16) int16 { return v }
func (I16I8) Right(v int8) int16 { return int16(v) }

// U16I32 promotes (uint16, int32) to int32.
type U16I32 struct{}

func (U16I32) Left(v uint16) int32 { return int32(v) }
func (U16I32) Right(v int32) int32 { return v }

// I32U16 promotes (int32, uint16) to int32.
type I32U16 struct{}

func (I32U16) Left(v int32) int32 { return v }
func (I32U16) Right(v uint16) int32 { return int32(v) }

// I16I32 promotes (int16, int32) to int32.
type I16I32 struct{}

func (I16I32) Left(v int16) int32 { return int32(v) }
func (I16I32) Right(v int32) int32 { return v }

// I32I16 promotes (int32, int16) to int32.
type I32I16 struct{}

func (I32I16) Left(v int32) int32 { return v }
func (I32I16) Right(v int16) int32 { return int32(v) }
