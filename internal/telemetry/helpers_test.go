package telemetry

import (
	"time"

	"github.com/roach88/blockrt/internal/signal"
)

// testRecord builds a record with a scalar ramp, a 1x2 matrix and a byte
// string.
func testRecord(tick uint64, t time.Duration, ramp float64) Record {
	rec := Record{Tick: tick, AppTime: t}
	rec.Add("ramp", signal.ScalarData(ramp))
	rec.Add("mat", signal.MatrixData(signal.FromRows([][]float64{{1, 2}})))
	rec.Add("msg", signal.BytesData([]byte("hi")))
	return rec
}
