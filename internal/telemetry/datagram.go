package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/roach88/blockrt/internal/signal"
)

// DatagramTimeout is how long the datagram logger tolerates failed sends
// before giving up on the telemetry receiver.
const DatagramTimeout = 10 * time.Second

// ErrTelemetryLost is returned once sends have failed for longer than
// DatagramTimeout.
var ErrTelemetryLost = errors.New("telemetry receiver unreachable")

// datagram is the wire form of a Record. Keys are sorted by the canonical
// encoder, so equal records encode to equal bytes.
type datagram struct {
	AppTime float64        `cbor:"app_time"`
	Tick    uint64         `cbor:"tick"`
	Signals map[string]any `cbor:"signals"`
}

// DatagramLogger sends each record as one canonical CBOR message.
//
// A failed send is logged once and skipped; the logger stays due so the
// next tick retries. Once no send has succeeded for DatagramTimeout, Log
// returns ErrTelemetryLost.
type DatagramLogger struct {
	gate    Gate
	w       io.Writer
	closer  io.Closer
	enc     cbor.EncMode
	healthy bool
	logger  *slog.Logger
}

// NewDatagramLogger creates a logger writing one message per Write to w.
func NewDatagramLogger(w io.Writer, period time.Duration) (*DatagramLogger, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}
	return &DatagramLogger{
		gate:    NewGate(period),
		w:       w,
		enc:     enc,
		healthy: true,
		logger:  slog.Default(),
	}, nil
}

// DialDatagram connects a UDP socket to addr. An empty addr or a zero
// period gives a logger that is never due and holds no socket.
func DialDatagram(addr string, period time.Duration) (*DatagramLogger, error) {
	if addr == "" || period <= 0 {
		return NewDatagramLogger(io.Discard, 0)
	}
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial telemetry socket %s: %w", addr, err)
	}
	l, err := NewDatagramLogger(conn, period)
	if err != nil {
		conn.Close()
		return nil, err
	}
	l.closer = conn
	return l, nil
}

// ShouldLog implements Logger.
func (l *DatagramLogger) ShouldLog(appTime time.Duration) bool {
	return l.gate.Due(appTime)
}

// Log implements Logger.
func (l *DatagramLogger) Log(_ context.Context, rec Record) error {
	msg, err := l.Encode(rec)
	if err != nil {
		return err
	}

	if _, err := l.w.Write(msg); err != nil {
		since := rec.AppTime
		if last, ok := l.gate.Last(); ok {
			since = rec.AppTime - last
		}
		if l.healthy {
			l.logger.Warn("lost telemetry connection, skipping transmit", "error", err)
			l.healthy = false
		} else if since > DatagramTimeout {
			return fmt.Errorf("%w after %v: %v", ErrTelemetryLost, DatagramTimeout, err)
		}
		return nil
	}

	if !l.healthy {
		l.logger.Info("regained telemetry connection")
		l.healthy = true
	}
	l.gate.Mark(rec.AppTime)
	return nil
}

// Encode renders rec as a canonical CBOR message.
func (l *DatagramLogger) Encode(rec Record) ([]byte, error) {
	msg := datagram{
		AppTime: rec.AppTime.Seconds(),
		Tick:    rec.Tick,
		Signals: make(map[string]any, len(rec.Fields)),
	}
	for _, f := range rec.Fields {
		msg.Signals[f.Name] = wireValue(f.Data)
	}
	b, err := l.enc.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode telemetry: %w", err)
	}
	return b, nil
}

// Close closes the socket, if DialDatagram opened one.
func (l *DatagramLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// wireValue maps a snapshot to a CBOR item: a float, an array of rows, or
// a byte string.
func wireValue(d signal.Data) any {
	switch d.Kind {
	case signal.DataMatrix:
		rows := make([][]float64, d.Rows)
		for r := range rows {
			rows[r] = make([]float64, d.Cols)
			for c := range rows[r] {
				rows[r][c] = d.At(r, c)
			}
		}
		return rows
	case signal.DataBytes:
		return d.Bytes
	default:
		return d.Scalar()
	}
}
