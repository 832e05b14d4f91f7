package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/roach88/blockrt/internal/signal"
)

// CSVFile is the file name CreateCSV uses inside a run directory.
const CSVFile = "diagram_output.csv"

// CSVLogger writes records as CSV: a header of "app_time" followed by the
// field names, written before the first row, then one row per record.
//
// app_time is in seconds. Scalars are bare numbers; matrices and byte
// strings are their JSON rendering in a quoted cell.
type CSVLogger struct {
	gate   Gate
	w      io.Writer
	closer io.Closer
	header bool
	sb     strings.Builder
}

// NewCSVLogger creates a logger writing to w.
func NewCSVLogger(w io.Writer, period time.Duration) *CSVLogger {
	return &CSVLogger{gate: NewGate(period), w: w}
}

// CreateCSV creates path and logs to it. With a zero period no file is
// created and the logger never becomes due.
func CreateCSV(path string, period time.Duration) (*CSVLogger, error) {
	if period <= 0 {
		slog.Info("not streaming output to file, logging rate set to zero")
		return NewCSVLogger(io.Discard, 0), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv log: %w", err)
	}
	slog.Info("streaming data output to file", "path", path, "period", period)
	l := NewCSVLogger(f, period)
	l.closer = f
	return l, nil
}

// ShouldLog implements Logger.
func (l *CSVLogger) ShouldLog(appTime time.Duration) bool {
	return l.gate.Due(appTime)
}

// Log implements Logger.
func (l *CSVLogger) Log(_ context.Context, rec Record) error {
	l.sb.Reset()
	if !l.header {
		l.sb.WriteString("app_time")
		for _, f := range rec.Fields {
			l.sb.WriteByte(',')
			l.sb.WriteString(f.Name)
		}
		l.sb.WriteByte('\n')
	}
	l.sb.WriteString(signal.FormatFloat(rec.AppTime.Seconds()))
	for _, f := range rec.Fields {
		l.sb.WriteByte(',')
		l.sb.WriteString(f.Data.CSV())
	}
	l.sb.WriteByte('\n')

	if _, err := io.WriteString(l.w, l.sb.String()); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	l.header = true
	l.gate.Mark(rec.AppTime)
	return nil
}

// Close closes the underlying file, if CreateCSV opened one.
func (l *CSVLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
