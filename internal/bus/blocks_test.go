package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/testutil"
)

func catch(fn func()) (err error) {
	defer block.Recover(&err)
	fn()
	return nil
}

func TestPublishSubscribe_RoundTripThroughHost(t *testing.T) {
	b := New()
	pubParams := NewBlockParams("setpoint", []string{"I16:LittleEndian", "U8:BigEndian"}, 0)
	subParams := NewBlockParams("feedback", []string{"I16:LittleEndian", "U8:BigEndian"}, 50)

	pub := NewPublishBlock(b, pubParams)
	sub := NewSubscribeBlock(b, subParams)

	pub.Output(pubParams, testutil.At(0), []float64{-2, 7})

	// The host forwards the published bytes back as the subscribed input.
	buf := make([]byte, 8)
	n, code := b.ReadOutput("setpoint", buf)
	require.Equal(t, Success, code)
	require.Equal(t, Success, b.WriteInput("feedback", buf[:n]))

	out := sub.Input(subParams, testutil.At(10*time.Millisecond))
	assert.Equal(t, []float64{-2, 7}, out.V0)
	assert.True(t, out.V1)

	out = sub.Input(subParams, testutil.At(40*time.Millisecond))
	assert.Equal(t, []float64{-2, 7}, out.V0, "values hold between messages")
	assert.True(t, out.V1)

	out = sub.Input(subParams, testutil.At(100*time.Millisecond))
	assert.False(t, out.V1, "stale after 50ms without a message")
}

func TestSubscribeBlock_NoMessageYet(t *testing.T) {
	b := New()
	p := NewBlockParams("imu", []string{"F32:LittleEndian"}, 100)
	sub := NewSubscribeBlock(b, p)

	out := sub.Input(p, testutil.At(0))
	assert.Equal(t, []float64{0}, out.V0)
	assert.False(t, out.V1)
}

func TestSubscribeBlock_RetunesStaleThreshold(t *testing.T) {
	b := New()
	p := NewBlockParams("imu", []string{"U8:BigEndian"}, 1000)
	sub := NewSubscribeBlock(b, p)

	require.Equal(t, Success, b.WriteInput("imu", []byte{7}))
	out := sub.Input(p, testutil.At(0))
	require.True(t, out.V1)

	p.StaleAgeMs = 10
	out = sub.Input(p, testutil.At(500*time.Millisecond))
	assert.False(t, out.V1, "new threshold drops history")
	assert.Equal(t, []float64{7}, out.V0)

	require.Equal(t, Success, b.WriteInput("imu", []byte{9}))
	out = sub.Input(p, testutil.At(505*time.Millisecond))
	assert.True(t, out.V1)
	assert.Equal(t, []float64{9}, out.V0)

	out = sub.Input(p, testutil.At(520*time.Millisecond))
	assert.False(t, out.V1)
}

func TestBlocks_SizeConflict(t *testing.T) {
	b := New()
	b.Advertise("cmd", 1)

	err := catch(func() {
		NewPublishBlock(b, NewBlockParams("cmd", []string{"U16:BigEndian"}, 0))
	})
	require.Error(t, err)
	assert.True(t, block.IsConfigError(err))
}
