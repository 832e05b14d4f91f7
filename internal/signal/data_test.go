package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestData_Scalar(t *testing.T) {
	d := ScalarData(uint16(42))
	assert.Equal(t, DataScalar, d.Kind)
	assert.Equal(t, 42.0, d.Scalar())
	assert.Equal(t, "42", d.JSON())
	assert.Equal(t, "42", d.CSV())
}

func TestData_MatrixRendersRows(t *testing.T) {
	m := FromRows([][]float64{{1, 2.5}, {3, 4}})
	d := MatrixData(m)

	assert.Equal(t, []float64{1, 3, 2.5, 4}, d.Values)
	assert.Equal(t, 2.5, d.At(0, 1))
	assert.Equal(t, "[[1,2.5],[3,4]]", d.JSON())
	assert.Equal(t, `"[[1,2.5],[3,4]]"`, d.CSV())
}

func TestData_Bytes(t *testing.T) {
	src := []byte(`say "hi"`)
	d := BytesData(src)
	src[0] = 'S'

	assert.Equal(t, `"say \"hi\""`, d.JSON())
	assert.Equal(t, `"""say \""hi\"""""`, d.CSV())
}

func TestData_NonFinite(t *testing.T) {
	assert.Equal(t, "null", ScalarData(math.NaN()).JSON())
	assert.Equal(t, "NaN", ScalarData(math.NaN()).CSV())
	assert.Equal(t, "-inf", FormatFloat(math.Inf(-1)))
}

func TestByteStream_ReusesCapacity(t *testing.T) {
	s := NewByteStream(8)
	s.Set([]byte{1, 2, 3})
	first := &s.Bytes()[0]
	s.Set([]byte{4, 5})

	assert.Equal(t, []byte{4, 5}, s.Bytes())
	assert.Same(t, first, &s.Bytes()[0])
	s.Reset()
	assert.Equal(t, 0, s.Len())
}
