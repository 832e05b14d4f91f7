package signal

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DataKind tags the shape of a Data record.
type DataKind string

const (
	DataScalar DataKind = "scalar"
	DataMatrix DataKind = "matrix"
	DataBytes  DataKind = "bytes"
)

// Data is a serializable snapshot of a value held by a block, used at the
// telemetry boundary. Matrix values are column-major, matching Matrix.
//
// Building a Data allocates; it is produced only when a logger asks for it,
// never on every tick.
type Data struct {
	Kind   DataKind  `json:"kind"`
	Rows   int       `json:"rows,omitempty"`
	Cols   int       `json:"cols,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Bytes  []byte    `json:"bytes,omitempty"`
}

// ScalarData snapshots a scalar.
func ScalarData[T Scalar](v T) Data {
	return Data{Kind: DataScalar, Rows: 1, Cols: 1, Values: []float64{ToFloat64(v)}}
}

// MatrixData snapshots a matrix.
func MatrixData[T Scalar](m *Matrix[T]) Data {
	vals := make([]float64, len(m.data))
	for i, v := range m.data {
		vals[i] = ToFloat64(v)
	}
	return Data{Kind: DataMatrix, Rows: m.rows, Cols: m.cols, Values: vals}
}

// BytesData snapshots a byte slice.
func BytesData(b []byte) Data {
	return Data{Kind: DataBytes, Bytes: append([]byte(nil), b...)}
}

// Scalar returns the first value, or 0 for empty and byte records.
func (d Data) Scalar() float64 {
	if len(d.Values) == 0 {
		return 0
	}
	return d.Values[0]
}

// At returns element (row, col) of a matrix record.
func (d Data) At(row, col int) float64 {
	return d.Values[col*d.Rows+row]
}

// JSON renders the value as JSON: a number, an array of rows, or a string
// holding the bytes as UTF-8. Non-finite numbers render as null.
func (d Data) JSON() string {
	var sb strings.Builder
	switch d.Kind {
	case DataScalar:
		sb.WriteString(jsonNumber(d.Scalar()))
	case DataMatrix:
		sb.WriteByte('[')
		for r := 0; r < d.Rows; r++ {
			if r > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('[')
			for c := 0; c < d.Cols; c++ {
				if c > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(jsonNumber(d.At(r, c)))
			}
			sb.WriteByte(']')
		}
		sb.WriteByte(']')
	case DataBytes:
		enc, _ := json.Marshal(string(d.Bytes))
		sb.Write(enc)
	}
	return sb.String()
}

// CSV renders the value as one CSV cell. Scalars are bare numbers; matrices
// and byte strings are their JSON form, quoted.
func (d Data) CSV() string {
	if d.Kind == DataScalar {
		return FormatFloat(d.Scalar())
	}
	return `"` + strings.ReplaceAll(d.JSON(), `"`, `""`) + `"`
}

// FormatFloat formats f in the shortest form that round-trips.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func jsonNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
