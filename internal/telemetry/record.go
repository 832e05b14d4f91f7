package telemetry

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/roach88/blockrt/internal/signal"
)

// Field is one named signal value.
type Field struct {
	Name string
	Data signal.Data
}

// Record is the snapshot of a model's logged signals at one tick. Field
// order is the column order loggers use.
type Record struct {
	Tick    uint64
	AppTime time.Duration
	Fields  []Field
}

// Add appends a field.
func (r *Record) Add(name string, d signal.Data) {
	r.Fields = append(r.Fields, Field{Name: name, Data: d})
}

// Names returns the field names in order.
func (r *Record) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Logger is a telemetry sink.
type Logger interface {
	// ShouldLog reports whether the logger is due at appTime.
	ShouldLog(appTime time.Duration) bool
	// Log writes rec unconditionally.
	Log(ctx context.Context, rec Record) error
}

// Emit builds a record and logs it if l is due at appTime. build is not
// called otherwise.
func Emit(ctx context.Context, l Logger, appTime time.Duration, build func() Record) error {
	if l == nil || !l.ShouldLog(appTime) {
		return nil
	}
	return l.Log(ctx, build())
}

// PeriodFromRate converts a rate in Hz to a logging period. Zero, negative
// and non-finite rates give 0, which disables logging.
func PeriodFromRate(hz float64) time.Duration {
	if !(hz > 0) || math.IsInf(hz, 1) {
		return 0
	}
	return time.Duration(float64(time.Second) / hz)
}

// Gate tracks when a logger last logged.
type Gate struct {
	period time.Duration
	last   time.Duration
	logged bool
}

// NewGate creates a gate with the given period. A period of 0 is never due.
func NewGate(period time.Duration) Gate {
	return Gate{period: period}
}

// Due reports whether the period has elapsed since the last Mark. The
// first call is due as soon as the period is positive.
func (g *Gate) Due(appTime time.Duration) bool {
	if g.period <= 0 {
		return false
	}
	return !g.logged || appTime-g.last >= g.period
}

// Mark records a successful log at appTime.
func (g *Gate) Mark(appTime time.Duration) {
	g.last = appTime
	g.logged = true
}

// Period returns the configured period.
func (g *Gate) Period() time.Duration {
	return g.period
}

// Last returns the time of the last Mark; ok is false before the first.
func (g *Gate) Last() (last time.Duration, ok bool) {
	return g.last, g.logged
}

// Multi logs each record to every member that is due.
type Multi []Logger

// ShouldLog reports whether any member is due.
func (m Multi) ShouldLog(appTime time.Duration) bool {
	for _, l := range m {
		if l.ShouldLog(appTime) {
			return true
		}
	}
	return false
}

// Log writes rec to the members that are due and joins their errors.
func (m Multi) Log(ctx context.Context, rec Record) error {
	var errs []error
	for _, l := range m {
		if !l.ShouldLog(rec.AppTime) {
			continue
		}
		if err := l.Log(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
