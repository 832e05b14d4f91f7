package blocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/codec"
	"github.com/roach88/blockrt/internal/testutil"
)

func TestFrameReceive(t *testing.T) {
	layout := codec.MustParseLayout("frame", []string{"U16:BigEndian", "I8:BigEndian"})
	p := &FrameReceiveParams{Length: 3, StaleAgeMs: 20}
	b := NewFrameReceive(p, layout)

	out := b.Process(p, testutil.At(0), []byte{0x01, 0x02, 0xFF})
	assert.Equal(t, []float64{258, -1}, out.V0)
	assert.True(t, out.V1)

	out = b.Process(p, testutil.At(10*time.Millisecond), []byte{0x00, 0x00})
	assert.Equal(t, []float64{258, -1}, out.V0, "wrong length is ignored")
	assert.True(t, out.V1)

	out = b.Process(p, testutil.At(30*time.Millisecond), nil)
	assert.False(t, out.V1)
}

func TestFrameReceive_RejectedFrameIsNotAnUpdate(t *testing.T) {
	b := NewFrameReceiveFunc(2, func(frame []byte, out []float64) bool {
		if frame[0] == 0 {
			return false
		}
		out[0], out[1] = float64(frame[0]), float64(frame[1])
		return true
	})
	p := &FrameReceiveParams{Length: 2, StaleAgeMs: 5}

	out := b.Process(p, testutil.At(0), []byte{0, 9})
	assert.Equal(t, []float64{0, 0}, out.V0)
	assert.False(t, out.V1, "undecodable frame never marks the tracker")

	out = b.Process(p, testutil.At(10*time.Millisecond), []byte{3, 4})
	assert.Equal(t, []float64{3, 4}, out.V0)
	assert.True(t, out.V1)

	out = b.Process(p, testutil.At(20*time.Millisecond), []byte{0, 1})
	assert.Equal(t, []float64{3, 4}, out.V0)
	assert.False(t, out.V1)
}

func TestNewFrameReceive_LayoutLargerThanFrame(t *testing.T) {
	layout := codec.MustParseLayout("frame", []string{"U32:BigEndian", "U32:BigEndian"})
	err := catch(func() { NewFrameReceive(&FrameReceiveParams{Length: 4}, layout) })
	require.Error(t, err)
	var cfg *block.ConfigError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, block.ErrCodeShapeMismatch, cfg.Code)
}

func TestFrameReceive_ShrunkLengthDecodesNothing(t *testing.T) {
	layout := codec.MustParseLayout("frame", []string{"U32:BigEndian", "U32:BigEndian"})
	p := &FrameReceiveParams{Length: 8, StaleAgeMs: 1000}
	b := NewFrameReceive(p, layout)

	p.Length = 4
	out := b.Process(p, testutil.At(0), []byte{0, 0, 0, 1})
	assert.Equal(t, []float64{0, 0}, out.V0)
	assert.False(t, out.V1)
}

func TestFrameReceive_RetuneDiscardsHistory(t *testing.T) {
	b := NewFrameReceiveFunc(1, func(frame []byte, out []float64) bool {
		out[0] = float64(frame[0])
		return true
	})
	p := &FrameReceiveParams{Length: 1, StaleAgeMs: 1000}

	out := b.Process(p, testutil.At(0), []byte{5})
	require.True(t, out.V1)

	p.StaleAgeMs = 2000
	out = b.Process(p, testutil.At(10*time.Millisecond), nil)
	assert.False(t, out.V1)
	assert.Equal(t, []float64{5}, out.V0)
	assert.Equal(t, 2*time.Second, b.Threshold())
}

func TestFrameReceive_RequiresDecoder(t *testing.T) {
	err := catch(func() { NewFrameReceiveFunc(1, nil) })
	require.Error(t, err)
	assert.True(t, block.IsConfigError(err))
}
