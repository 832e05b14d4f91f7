package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/blockrt/internal/engine"
	"github.com/roach88/blockrt/internal/store"
)

// StoreLogger writes records to a run in the SQLite store.
type StoreLogger struct {
	gate  Gate
	st    *store.Store
	runID string
	buf   []store.Sample
}

// RunInfo describes the run a StoreLogger records.
type RunInfo struct {
	Model       string
	Fundamental time.Duration
	Params      map[string]map[string]string
}

// StartRun creates a run with an id from gen and returns a logger for it.
func StartRun(ctx context.Context, st *store.Store, gen engine.RunIDGenerator, info RunInfo, period time.Duration) (*StoreLogger, error) {
	id := gen.Generate()
	err := st.CreateRun(ctx, store.Run{
		ID:          id,
		Model:       info.Model,
		Fundamental: info.Fundamental,
		Params:      info.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	slog.Debug("telemetry run started", "run_id", id, "model", info.Model)
	return NewStoreLogger(st, id, period), nil
}

// NewStoreLogger logs to an existing run.
func NewStoreLogger(st *store.Store, runID string, period time.Duration) *StoreLogger {
	return &StoreLogger{gate: NewGate(period), st: st, runID: runID}
}

// RunID returns the run being written.
func (l *StoreLogger) RunID() string {
	return l.runID
}

// ShouldLog implements Logger.
func (l *StoreLogger) ShouldLog(appTime time.Duration) bool {
	return l.gate.Due(appTime)
}

// Log implements Logger. All fields of rec are written in one transaction.
func (l *StoreLogger) Log(ctx context.Context, rec Record) error {
	l.buf = l.buf[:0]
	for _, f := range rec.Fields {
		l.buf = append(l.buf, store.Sample{
			RunID:   l.runID,
			Tick:    rec.Tick,
			AppTime: rec.AppTime,
			Name:    f.Name,
			Data:    f.Data,
		})
	}
	if err := l.st.WriteSamples(ctx, l.buf); err != nil {
		return fmt.Errorf("log to store: %w", err)
	}
	l.gate.Mark(rec.AppTime)
	return nil
}

// Finish marks the run finished after ticks ticks.
func (l *StoreLogger) Finish(ctx context.Context, ticks uint64) error {
	return l.st.FinishRun(ctx, l.runID, ticks)
}
