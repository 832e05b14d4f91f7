package bus

import (
	"log/slog"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/codec"
	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/stale"
)

// BlockParams binds a bus block to a topic and its wire layout.
type BlockParams struct {
	Topic      string
	Layout     codec.Layout
	StaleAgeMs float64
}

// NewBlockParams parses the layout; staleAgeMs is used only by
// SubscribeBlock.
func NewBlockParams(topic string, specs []string, staleAgeMs float64) *BlockParams {
	return &BlockParams{
		Topic:      Topic(topic),
		Layout:     codec.MustParseLayout("message", specs),
		StaleAgeMs: staleAgeMs,
	}
}

// SubscribeBlock reads a subscribed message each tick and decodes it into
// one value per layout field. Values hold between messages; the validity
// flag drops once no message has arrived for StaleAgeMs. A changed
// StaleAgeMs rebuilds the tracker, so validity restarts from the next
// message.
type SubscribeBlock struct {
	bus     *Bus
	buf     []byte
	values  []float64
	tracker stale.Tracker
}

var _ block.Input[BlockParams, signal.Tuple2[[]float64, bool]] = (*SubscribeBlock)(nil)

// NewSubscribeBlock subscribes p.Topic on b.
func NewSubscribeBlock(b *Bus, p *BlockParams) *SubscribeBlock {
	if code := b.Subscribe(p.Topic, p.Layout.Size()); !code.IsSuccess() {
		block.PanicConfig(block.ErrCodeShapeMismatch, "topic", "subscribe %s: %s", p.Topic, code)
	}
	slog.Debug("bus subscribed", "topic", p.Topic, "size", p.Layout.Size())
	return &SubscribeBlock{
		bus:     b,
		buf:     make([]byte, p.Layout.Size()),
		values:  make([]float64, len(p.Layout)),
		tracker: stale.New(block.Millis(p.StaleAgeMs)),
	}
}

func (s *SubscribeBlock) Input(p *BlockParams, ctx block.Context) signal.Tuple2[[]float64, bool] {
	if s.tracker.Retune(block.Millis(p.StaleAgeMs)) {
		slog.Debug("bus stale threshold changed", "topic", p.Topic, "stale_age_ms", p.StaleAgeMs)
	}
	now := ctx.Time()
	if _, ok, code := s.bus.TakeInput(p.Topic, s.buf); ok && code.IsSuccess() && p.Layout.Unpack(s.buf, s.values) {
		s.tracker.MarkUpdated(now)
	}
	return signal.Tuple2[[]float64, bool]{V0: s.values, V1: s.tracker.IsValid(now)}
}

func (s *SubscribeBlock) Snapshot() signal.Data {
	return signal.MatrixData(signal.FromRows([][]float64{s.values}))
}

// PublishBlock packs its input with the layout and publishes it each tick.
type PublishBlock struct {
	bus *Bus
	buf []byte
}

var _ block.Output[BlockParams, []float64] = (*PublishBlock)(nil)

// NewPublishBlock advertises p.Topic on b.
func NewPublishBlock(b *Bus, p *BlockParams) *PublishBlock {
	if code := b.Advertise(p.Topic, p.Layout.Size()); !code.IsSuccess() {
		block.PanicConfig(block.ErrCodeShapeMismatch, "topic", "advertise %s: %s", p.Topic, code)
	}
	slog.Debug("bus advertised", "topic", p.Topic, "size", p.Layout.Size())
	return &PublishBlock{bus: b, buf: make([]byte, 0, p.Layout.Size())}
}

func (o *PublishBlock) Output(p *BlockParams, _ block.Context, in []float64) {
	o.buf = p.Layout.Append(o.buf[:0], in)
	if code := o.bus.Publish(p.Topic, o.buf); !code.IsSuccess() {
		panic(&block.PreconditionError{
			Code:    block.ErrCodeShapeMismatch,
			Block:   "PublishBlock",
			Message: code.Err(p.Topic).Error(),
		})
	}
}

func (o *PublishBlock) Snapshot() signal.Data { return signal.BytesData(o.buf) }
