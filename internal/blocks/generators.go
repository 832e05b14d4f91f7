package blocks

import (
	"math"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// RampParams configures a Ramp.
type RampParams struct {
	// Rate is the slope in units per second.
	Rate float64
	// StartTime is when the ramp leaves zero, in seconds.
	StartTime float64
}

// NewRampParams creates RampParams.
func NewRampParams(rate, startTime float64) *RampParams {
	return &RampParams{Rate: rate, StartTime: startTime}
}

// Ramp outputs Rate * max(0, t - StartTime).
type Ramp[T signal.Float] struct {
	out T
}

var _ block.Generator[RampParams, float64] = (*Ramp[float64])(nil)

func (b *Ramp[T]) Generate(p *RampParams, ctx block.Context) T {
	t := ctx.Time().Seconds()
	b.out = T(p.Rate * math.Max(0, t-p.StartTime))
	return b.out
}

func (b *Ramp[T]) Snapshot() signal.Data { return signal.ScalarData(b.out) }

// SinewaveParams configures a Sinewave. Frequency is in radians per second.
type SinewaveParams struct {
	Amplitude float64
	Frequency float64
	Phase     float64
	Bias      float64
}

// NewSinewaveParams creates SinewaveParams.
func NewSinewaveParams(amplitude, frequency, phase, bias float64) *SinewaveParams {
	return &SinewaveParams{Amplitude: amplitude, Frequency: frequency, Phase: phase, Bias: bias}
}

// Sinewave outputs Amplitude*sin(Frequency*t + Phase) + Bias, evaluated at
// the context time so skipped ticks never introduce phase drift.
type Sinewave[T signal.Float] struct {
	out T
}

func (b *Sinewave[T]) Generate(p *SinewaveParams, ctx block.Context) T {
	t := ctx.Time().Seconds()
	b.out = T(p.Amplitude*math.Sin(p.Frequency*t+p.Phase) + p.Bias)
	return b.out
}

func (b *Sinewave[T]) Snapshot() signal.Data { return signal.ScalarData(b.out) }

// AppTimeParams is empty; AppTime has nothing to configure.
type AppTimeParams struct{}

// AppTime outputs the context time in seconds.
type AppTime struct {
	out float64
}

func (b *AppTime) Generate(_ *AppTimeParams, ctx block.Context) float64 {
	b.out = ctx.Time().Seconds()
	return b.out
}

func (b *AppTime) Snapshot() signal.Data { return signal.ScalarData(b.out) }

// ConstantParams holds a constant scalar.
type ConstantParams[T signal.Scalar] struct {
	Value T
}

// Constant outputs its parameter.
type Constant[T signal.Scalar] struct {
	out T
}

func (b *Constant[T]) Generate(p *ConstantParams[T], _ block.Context) T {
	b.out = p.Value
	return b.out
}

func (b *Constant[T]) Snapshot() signal.Data { return signal.ScalarData(b.out) }

// MatrixConstantParams holds a constant matrix.
type MatrixConstantParams[T signal.Scalar] struct {
	Value *signal.Matrix[T]
}

// MatrixConstant outputs a copy of its parameter owned by the block, so
// downstream blocks never hold a reference into parameters.
type MatrixConstant[T signal.Scalar] struct {
	out *signal.Matrix[T]
}

// NewMatrixConstant sizes the block for p.
func NewMatrixConstant[T signal.Scalar](p *MatrixConstantParams[T]) *MatrixConstant[T] {
	return &MatrixConstant[T]{out: p.Value.Clone()}
}

func (b *MatrixConstant[T]) Generate(p *MatrixConstantParams[T], _ block.Context) *signal.Matrix[T] {
	b.out.CopyFrom(p.Value)
	return b.out
}

func (b *MatrixConstant[T]) Snapshot() signal.Data { return signal.MatrixData(b.out) }

// BytesLiteralParams holds a fixed byte string.
type BytesLiteralParams struct {
	Value []byte
}

// NewBytesLiteralParams copies value.
func NewBytesLiteralParams(value []byte) *BytesLiteralParams {
	return &BytesLiteralParams{Value: append([]byte(nil), value...)}
}

// BytesLiteral outputs its byte string.
type BytesLiteral struct {
	out signal.ByteStream
}

func (b *BytesLiteral) Generate(p *BytesLiteralParams, _ block.Context) []byte {
	b.out.Set(p.Value)
	return b.out.Bytes()
}

func (b *BytesLiteral) Snapshot() signal.Data { return signal.BytesData(b.out.Bytes()) }
