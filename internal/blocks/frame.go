package blocks

import (
	"time"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/codec"
	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/stale"
)

// FrameDecoder fills out from a received frame payload and reports whether
// it decoded anything. On false, out must be left untouched.
type FrameDecoder func(frame []byte, out []float64) bool

// LayoutDecoder decodes a frame with a fixed codec layout.
func LayoutDecoder(l codec.Layout) FrameDecoder {
	return l.Unpack
}

// FrameReceiveParams configures a FrameReceive. StaleAgeMs may change
// between ticks.
type FrameReceiveParams struct {
	Length     int
	StaleAgeMs float64
}

// FrameReceive decodes fixed-length frames, such as CAN payloads, into a
// cache of signals. Frames of any other length, and frames the decoder
// rejects, are ignored: the cache holds its last values and the frame does
// not count as an update. The validity flag comes from a stale tracker that
// is rebuilt whenever StaleAgeMs changes.
type FrameReceive struct {
	decode  FrameDecoder
	cache   []float64
	tracker stale.Tracker
	staleMs float64
	valid   bool
}

// NewFrameReceive builds a receiver decoding p.Length-byte frames with
// layout. The layout must fit in the frame.
func NewFrameReceive(p *FrameReceiveParams, layout codec.Layout) *FrameReceive {
	mustPositive("length", p.Length)
	if p.Length < layout.Size() {
		block.PanicConfig(block.ErrCodeShapeMismatch, "length",
			"%d-byte frame cannot hold a %d-byte layout", p.Length, layout.Size())
	}
	return NewFrameReceiveFunc(len(layout), LayoutDecoder(layout))
}

// NewFrameReceiveFunc builds a receiver producing signals values with a
// custom decoder.
func NewFrameReceiveFunc(signals int, decode FrameDecoder) *FrameReceive {
	mustPositive("signals", signals)
	if decode == nil {
		block.PanicConfig(block.ErrCodeInvalidParameter, "decoder", "decoder is required")
	}
	return &FrameReceive{decode: decode, cache: make([]float64, signals)}
}

func (b *FrameReceive) Process(p *FrameReceiveParams, ctx block.Context, in []byte) signal.Tuple2[[]float64, bool] {
	if p.StaleAgeMs != b.staleMs {
		b.tracker = stale.FromMillis(p.StaleAgeMs)
		b.staleMs = p.StaleAgeMs
	}
	now := ctx.Time()
	if len(in) == p.Length && b.decode(in, b.cache) {
		b.tracker.MarkUpdated(now)
	}
	b.valid = b.tracker.IsValid(now)
	return signal.Tuple2[[]float64, bool]{V0: b.cache, V1: b.valid}
}

// Threshold returns the stale threshold currently in force.
func (b *FrameReceive) Threshold() time.Duration { return b.tracker.Threshold() }

func (b *FrameReceive) Snapshot() signal.Data {
	return signal.MatrixData(signal.FromRows([][]float64{b.cache}))
}
