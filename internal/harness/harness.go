package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/bus"
	"github.com/roach88/blockrt/internal/codec"
	"github.com/roach88/blockrt/internal/engine"
	"github.com/roach88/blockrt/internal/model"
	"github.com/roach88/blockrt/internal/params"
	"github.com/roach88/blockrt/internal/telemetry"
)

// Harness runs one scenario against a private bus on a simulated clock.
type Harness struct {
	scenario *Scenario
	bus      *bus.Bus
	model    *model.Demo
	layout   codec.Layout
	command  string
	logger   *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Decode and validate the scenario params
// 2. Build the demo diagram on a fresh bus
// 3. Tick it on a simulated clock, delivering inputs and recording traces
// 4. Evaluate assertions against the result
//
// An error is returned only when the scenario itself is unusable; diagram
// and runtime failures are part of the Result.
func Run(scenario *Scenario) (*Result, error) {
	d, err := diagramParams(scenario.Params)
	if err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	result := NewResult()
	h := &Harness{
		scenario: scenario,
		bus:      bus.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	h.model, err = model.NewDemo(d, h.bus)
	switch {
	case block.IsConfigError(err):
		result.ConfigError = err
	case err != nil:
		return nil, err
	default:
		if err := h.prepare(); err != nil {
			return nil, err
		}
		if err := h.run(context.Background(), result); err != nil {
			return nil, err
		}
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}
	return result, nil
}

// diagramParams re-encodes scenario params as a diagram_params document so
// they pass the same schema as a params file.
func diagramParams(raw map[string]map[string]any) (params.Diagram, error) {
	if len(raw) == 0 {
		return params.Diagram{}, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return params.Parse(data, params.FormatYAML)
}

// prepare checks inputs and trace names against the built diagram.
func (h *Harness) prepare() error {
	h.command, _ = h.model.Topics()
	layout, err := codec.ParseLayout(h.model.CommandLayout())
	if err != nil {
		return err
	}
	h.layout = layout

	for i, in := range h.scenario.Inputs {
		if in.Topic != "" && bus.Topic(in.Topic) != h.command {
			return fmt.Errorf("inputs[%d]: diagram does not subscribe %q", i, in.Topic)
		}
		if len(in.Values) != len(h.layout) {
			return fmt.Errorf("inputs[%d]: %d values for a %d-field message", i, len(in.Values), len(h.layout))
		}
	}

	rec := h.model.Record(0, 0)
	names := rec.Names()
	for _, name := range h.scenario.Trace {
		if !slices.Contains(names, name) {
			return fmt.Errorf("trace: unknown signal %q", name)
		}
	}
	return nil
}

func (h *Harness) run(ctx context.Context, result *Result) error {
	var csv bytes.Buffer
	csvLog := telemetry.NewCSVLogger(&csv, h.scenario.Timestep())

	rt := engine.NewRuntime(engine.NewSimClock(), h.scenario.Timestep())
	if err := h.deliver(1); err != nil {
		return err
	}

	stats, err := engine.Run(ctx, rt, h.model, engine.RunOptions{
		MaxTicks: h.scenario.Ticks,
		Logger:   h.logger,
		AfterTick: func(tick engine.Tick) error {
			rec := h.selected(h.model.Record(tick.Seq(), tick.Time()))
			result.Trace = append(result.Trace, rec)
			if err := telemetry.Emit(ctx, csvLog, tick.Time(), func() telemetry.Record { return rec }); err != nil {
				return err
			}
			return h.deliver(tick.Seq() + 1)
		},
	})
	result.Ticks = stats.Ticks
	result.CSV = csv.Bytes()

	var re *engine.RuntimeError
	if errors.As(err, &re) {
		result.RuntimeError = err
		return nil
	}
	return err
}

// deliver writes the inputs scheduled for tick seq.
func (h *Harness) deliver(seq int64) error {
	for _, in := range h.scenario.Inputs {
		if in.Tick != seq {
			continue
		}
		msg := h.layout.Append(nil, in.Values)
		if code := h.bus.WriteInput(h.command, msg); !code.IsSuccess() {
			return code.Err(h.command)
		}
	}
	return nil
}

// selected keeps the scenario's trace fields, in trace order.
func (h *Harness) selected(rec telemetry.Record) telemetry.Record {
	if len(h.scenario.Trace) == 0 {
		return rec
	}
	out := telemetry.Record{Tick: rec.Tick, AppTime: rec.AppTime}
	for _, name := range h.scenario.Trace {
		for _, f := range rec.Fields {
			if f.Name == name {
				out.Fields = append(out.Fields, f)
				break
			}
		}
	}
	return out
}
