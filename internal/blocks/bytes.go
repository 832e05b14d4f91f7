package blocks

import (
	"time"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/codec"
	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/stale"
)

// BytesPackParams holds the layout values are packed with.
type BytesPackParams struct {
	Layout codec.Layout
}

// NewBytesPackParams parses field specs such as "U16:LittleEndian".
func NewBytesPackParams(specs []string) *BytesPackParams {
	return &BytesPackParams{Layout: codec.MustParseLayout("pack_spec", specs)}
}

// BytesPack encodes one value per layout field into a byte string.
type BytesPack struct {
	out signal.ByteStream
}

func (b *BytesPack) Process(p *BytesPackParams, _ block.Context, in []float64) []byte {
	if len(in) != len(p.Layout) {
		panic(&block.PreconditionError{
			Code:    block.ErrCodeShapeMismatch,
			Block:   "BytesPack",
			Message: "value count differs from layout field count",
		})
	}
	b.out.SetBuffer(p.Layout.Append(b.out.Buffer(), in))
	return b.out.Bytes()
}

func (b *BytesPack) Snapshot() signal.Data { return signal.BytesData(b.out.Bytes()) }

// BytesUnpackParams configures a BytesUnpack.
type BytesUnpackParams struct {
	Layout   codec.Layout
	StaleAge time.Duration
}

// NewBytesUnpackParams parses field specs; staleAgeMs is the freshness
// threshold in milliseconds.
func NewBytesUnpackParams(specs []string, staleAgeMs float64) *BytesUnpackParams {
	l := codec.MustParseLayout("unpack_spec", specs)
	t := stale.FromMillis(staleAgeMs)
	return &BytesUnpackParams{Layout: l, StaleAge: t.Threshold()}
}

// BytesUnpack decodes a byte string into one value per layout field.
//
// A decode either fills every value or changes none. On a failed decode the
// last good values are held and the validity flag stays true only while
// they are younger than StaleAge.
type BytesUnpack struct {
	values  []float64
	valid   bool
	tracker stale.Tracker
}

// NewBytesUnpack sizes the block for p.
func NewBytesUnpack(p *BytesUnpackParams) *BytesUnpack {
	return &BytesUnpack{
		values:  make([]float64, len(p.Layout)),
		tracker: stale.New(p.StaleAge),
	}
}

func (b *BytesUnpack) Process(p *BytesUnpackParams, ctx block.Context, in []byte) signal.Tuple2[[]float64, bool] {
	b.tracker.Retune(p.StaleAge)
	now := ctx.Time()
	if p.Layout.Unpack(in, b.values) {
		b.tracker.MarkUpdated(now)
		b.valid = true
	} else {
		b.valid = b.valid && b.tracker.IsValid(now)
	}
	return signal.Tuple2[[]float64, bool]{V0: b.values, V1: b.valid}
}

// IsValid reports the validity flag from the last call.
func (b *BytesUnpack) IsValid() bool { return b.valid }

func (b *BytesUnpack) Snapshot() signal.Data {
	return signal.MatrixData(signal.FromRows([][]float64{b.values}))
}
