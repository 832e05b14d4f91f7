package telemetry

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decoded struct {
	AppTime float64                    `cbor:"app_time"`
	Tick    uint64                     `cbor:"tick"`
	Signals map[string]cbor.RawMessage `cbor:"signals"`
}

func TestDatagramLogger_Encode(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewDatagramLogger(&buf, 100*time.Millisecond)
	require.NoError(t, err)

	rec := testRecord(7, 1500*time.Millisecond, 3)
	require.NoError(t, l.Log(context.Background(), rec))

	var got decoded
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1.5, got.AppTime)
	assert.Equal(t, uint64(7), got.Tick)

	var ramp float64
	require.NoError(t, cbor.Unmarshal(got.Signals["ramp"], &ramp))
	assert.Equal(t, 3.0, ramp)

	var mat [][]float64
	require.NoError(t, cbor.Unmarshal(got.Signals["mat"], &mat))
	assert.Equal(t, [][]float64{{1, 2}}, mat)

	var msg []byte
	require.NoError(t, cbor.Unmarshal(got.Signals["msg"], &msg))
	assert.Equal(t, []byte("hi"), msg)
}

func TestDatagramLogger_EncodingIsCanonical(t *testing.T) {
	l, err := NewDatagramLogger(&bytes.Buffer{}, time.Second)
	require.NoError(t, err)

	a := testRecord(1, 0, 1)
	b := Record{Tick: 1}
	for i := len(a.Fields) - 1; i >= 0; i-- {
		b.Add(a.Fields[i].Name, a.Fields[i].Data)
	}

	ea, err := l.Encode(a)
	require.NoError(t, err)
	eb, err := l.Encode(b)
	require.NoError(t, err)
	assert.Equal(t, ea, eb, "field order does not change the message")
}

type failingWriter struct{ fail bool }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.fail {
		return 0, errors.New("connection refused")
	}
	return len(p), nil
}

func TestDatagramLogger_SendFailures(t *testing.T) {
	w := &failingWriter{}
	l, err := NewDatagramLogger(w, 100*time.Millisecond)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, l.Log(ctx, Record{AppTime: 0}))
	w.fail = true

	require.NoError(t, l.Log(ctx, Record{AppTime: time.Second}), "first failure is skipped")
	assert.True(t, l.ShouldLog(time.Second+time.Millisecond), "a failed send leaves the logger due")
	require.NoError(t, l.Log(ctx, Record{AppTime: 5 * time.Second}))

	err = l.Log(ctx, Record{AppTime: 11 * time.Second})
	assert.ErrorIs(t, err, ErrTelemetryLost)

	w.fail = false
	require.NoError(t, l.Log(ctx, Record{AppTime: 12 * time.Second}))
	assert.False(t, l.ShouldLog(12*time.Second))
}

func TestDialDatagram_SendsToSocket(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	l, err := DialDatagram(pc.LocalAddr().String(), 100*time.Millisecond)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Log(context.Background(), testRecord(1, 0, 2)))

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)

	var got decoded
	require.NoError(t, cbor.Unmarshal(buf[:n], &got))
	assert.Equal(t, uint64(1), got.Tick)
}

func TestDialDatagram_DisabledWithoutSocket(t *testing.T) {
	l, err := DialDatagram("", time.Second)
	require.NoError(t, err)
	assert.False(t, l.ShouldLog(0))
	assert.NoError(t, l.Close())
}
