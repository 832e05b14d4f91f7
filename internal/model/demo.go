package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/blocks"
	"github.com/roach88/blockrt/internal/bus"
	"github.com/roach88/blockrt/internal/params"
	"github.com/roach88/blockrt/internal/promote"
	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/telemetry"
)

// DemoName identifies the demo diagram in run records.
const DemoName = "demo"

// Default bus topics of the demo diagram.
const (
	StateTopic   = "demo/state"
	CommandTopic = "demo/command"
)

var (
	defaultPackSpec    = []string{"F64:LittleEndian", "U16:LittleEndian"}
	defaultStateSpec   = []string{"F32:LittleEndian", "U16:LittleEndian"}
	defaultCommandSpec = []string{"F32:LittleEndian", "F32:LittleEndian"}
)

// Demo is the reference diagram. See the package documentation for its
// wiring.
type Demo struct {
	ramp    blocks.Ramp[float64]
	rampP   *blocks.RampParams
	sine    blocks.Sinewave[float64]
	sineP   *blocks.SinewaveParams
	bias    blocks.Bias[float32, float64, float64, promote.F32F64]
	biasP   *blocks.BiasParams[float32]
	compare blocks.Comparison[float64]
	compP   *blocks.ComparisonParams
	reset   blocks.Constant[bool]
	resetP  *blocks.ConstantParams[bool]
	counter blocks.Counter[float64, bool]
	countP  blocks.CounterParams

	pack      blocks.BytesPack
	packP     *blocks.BytesPackParams
	packIn    []float64
	transmit  blocks.DatagramTransmit
	transmitP *blocks.DatagramTransmitParams
	unpack    *blocks.BytesUnpack
	unpackP   *blocks.BytesUnpackParams

	publish    *bus.PublishBlock
	publishP   *bus.BlockParams
	subscribe  *bus.SubscribeBlock
	subscribeP *bus.BlockParams
	cmdValid   bool

	cmd    *signal.Matrix[float64]
	delay  *blocks.Delay[signal.Matrix[float64], *signal.Matrix[float64]]
	delayP *blocks.DelayParams[signal.Matrix[float64]]

	sender blocks.Sender
}

// NewDemo builds the demo diagram from d, registering its topics on b.
// A parameter that breaks a block's contract is returned as a
// *block.ConfigError naming the block.
func NewDemo(d params.Diagram, b *bus.Bus) (m *Demo, err error) {
	defer block.Recover(&err)

	m = &Demo{}
	configure("Ramp1", func(name string) {
		m.rampP = blocks.NewRampParams(
			params.LoadParam(d, name, "rate", 1.0, params.Float),
			params.LoadParam(d, name, "start_time", 0.0, params.Float),
		)
	})
	configure("Sine1", func(name string) {
		m.sineP = blocks.NewSinewaveParams(
			params.LoadParam(d, name, "amplitude", 1.0, params.Float),
			params.LoadParam(d, name, "frequency", 1.0, params.Float),
			params.LoadParam(d, name, "phase", 0.0, params.Float),
			params.LoadParam(d, name, "bias", 0.0, params.Float),
		)
	})
	configure("Bias1", func(name string) {
		m.biasP = &blocks.BiasParams[float32]{
			Offset: float32(params.LoadParam(d, name, "bias", 0.5, params.Float)),
		}
	})
	configure("Compare1", func(name string) {
		m.compP = blocks.NewComparisonParams(params.LoadParam(d, name, "comparison_type", "GreaterThan", params.String))
	})
	configure("Reset1", func(name string) {
		m.resetP = &blocks.ConstantParams[bool]{Value: params.LoadParam(d, name, "value", false, params.Bool)}
	})
	configure("Pack1", func(name string) {
		m.packP = blocks.NewBytesPackParams(params.LoadParam(d, name, "pack_spec", defaultPackSpec, params.Strings))
		if len(m.packP.Layout) != 2 {
			block.PanicConfig(block.ErrCodeShapeMismatch, "pack_spec", "packs (Bias1, Counter1): need 2 fields, got %d", len(m.packP.Layout))
		}
		m.packIn = make([]float64, 2)
	})
	configure("Transmit1", func(name string) {
		m.transmitP = &blocks.DatagramTransmitParams{
			Destination: params.LoadParam(d, name, "destination", "", params.String),
		}
	})
	configure("Unpack1", func(name string) {
		m.unpackP = blocks.NewBytesUnpackParams(
			params.LoadParam(d, name, "unpack_spec", m.packP.Layout.Strings(), params.Strings),
			params.LoadParam(d, name, "stale_age_ms", 100.0, params.Float),
		)
		m.unpack = blocks.NewBytesUnpack(m.unpackP)
	})
	configure("Publish1", func(name string) {
		m.publishP = bus.NewBlockParams(
			params.LoadParam(d, name, "topic", StateTopic, params.String),
			params.LoadParam(d, name, "message_spec", defaultStateSpec, params.Strings),
			0,
		)
		if len(m.publishP.Layout) != len(m.unpackP.Layout) {
			block.PanicConfig(block.ErrCodeShapeMismatch, "message_spec",
				"publishes Unpack1: need %d fields, got %d", len(m.unpackP.Layout), len(m.publishP.Layout))
		}
		m.publish = bus.NewPublishBlock(b, m.publishP)
	})
	configure("Subscribe1", func(name string) {
		m.subscribeP = bus.NewBlockParams(
			params.LoadParam(d, name, "topic", CommandTopic, params.String),
			params.LoadParam(d, name, "message_spec", defaultCommandSpec, params.Strings),
			params.LoadParam(d, name, "stale_age_ms", 50.0, params.Float),
		)
		m.subscribe = bus.NewSubscribeBlock(b, m.subscribeP)
		m.cmd = signal.NewMatrix[float64](1, len(m.subscribeP.Layout))
	})
	configure("Delay1", func(name string) {
		n := params.LoadParam(d, name, "samples", 2.0, params.Float)
		ic := params.LoadIC(d, name, "ic", signal.NewMatrix[float64](1, m.cmd.Cols()))
		m.delayP = &blocks.DelayParams[signal.Matrix[float64]]{
			IC:        *ic,
			IsDelayed: params.LoadParam(d, name, "is_delayed", false, params.Bool),
		}
		m.delay = blocks.NewDelay[signal.Matrix[float64], *signal.Matrix[float64]](
			signal.MatrixPass[float64]{}, int(n), m.delayP)
	})
	return m, nil
}

// configure runs one block's construction and stamps the block name on a
// ConfigError it raises.
func configure(name string, build func(name string)) {
	defer func() {
		if r := recover(); r != nil {
			var ce *block.ConfigError
			if e, ok := r.(error); ok && errors.As(e, &ce) && ce.Block == "" {
				ce.Block = name
			}
			panic(r)
		}
	}()
	build(name)
}

// Step runs one tick of the diagram.
func (m *Demo) Step(ctx block.Context) error {
	ramp := m.ramp.Generate(m.rampP, ctx)
	sine := m.sine.Generate(m.sineP, ctx)
	biased := m.bias.Process(m.biasP, ctx, ramp)
	above := m.compare.Process(m.compP, ctx, signal.Tuple2[float64, float64]{V0: biased, V1: sine})
	reset := m.reset.Generate(m.resetP, ctx)
	count := m.counter.Process(&m.countP, ctx, signal.Tuple2[float64, bool]{V0: above, V1: reset})

	m.packIn[0], m.packIn[1] = biased, count
	packed := m.pack.Process(m.packP, ctx, m.packIn)
	m.transmit.Process(m.transmitP, ctx, packed)
	state := m.unpack.Process(m.unpackP, ctx, packed)
	m.publish.Output(m.publishP, ctx, state.V0)

	cmd := m.subscribe.Input(m.subscribeP, ctx)
	m.cmdValid = cmd.V1
	for i, v := range cmd.V0 {
		m.cmd.Set(0, i, v)
	}
	m.delay.Process(m.delayP, ctx, m.cmd)
	return nil
}

// SetSender routes Transmit1's payload to s on Flush.
func (m *Demo) SetSender(s blocks.Sender) {
	m.sender = s
}

// Flush sends the packed state to Transmit1's destination, if both a
// sender and a destination are configured.
func (m *Demo) Flush() error {
	if m.sender == nil || m.transmitP.Destination == "" {
		return nil
	}
	if err := m.transmit.Flush(m.transmitP, m.sender); err != nil {
		return fmt.Errorf("transmit to %s: %w", m.transmitP.Destination, err)
	}
	return nil
}

// Topics returns the command and state topics the diagram is bound to.
func (m *Demo) Topics() (command, state string) {
	return m.subscribeP.Topic, m.publishP.Topic
}

// CommandLayout returns the wire layout Subscribe1 decodes.
func (m *Demo) CommandLayout() []string {
	return m.subscribeP.Layout.Strings()
}

// Record snapshots every logged signal at tick seq.
func (m *Demo) Record(seq int64, appTime time.Duration) telemetry.Record {
	rec := telemetry.Record{Tick: uint64(seq), AppTime: appTime}
	rec.Add("Ramp1", m.ramp.Snapshot())
	rec.Add("Sine1", m.sine.Snapshot())
	rec.Add("Bias1", m.bias.Snapshot())
	rec.Add("Compare1", m.compare.Snapshot())
	rec.Add("Counter1", m.counter.Snapshot())
	rec.Add("Pack1", m.pack.Snapshot())
	rec.Add("Unpack1", m.unpack.Snapshot())
	rec.Add("Unpack1.valid", signal.ScalarData(m.unpack.IsValid()))
	rec.Add("Publish1", m.publish.Snapshot())
	rec.Add("Subscribe1", m.subscribe.Snapshot())
	rec.Add("Subscribe1.valid", signal.ScalarData(m.cmdValid))
	rec.Add("Delay1", signal.MatrixData(m.delay.Last()))
	return rec
}
