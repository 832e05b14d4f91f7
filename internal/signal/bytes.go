package signal

// ByteStream is block-owned storage for a variable-length byte signal.
// Its crossing form is the borrowed slice returned by Bytes, valid until the
// owner next writes to it.
type ByteStream struct {
	buf []byte
}

// NewByteStream returns an empty stream with room for capacity bytes.
func NewByteStream(capacity int) *ByteStream {
	return &ByteStream{buf: make([]byte, 0, capacity)}
}

// Set replaces the contents with a copy of b, reusing existing capacity.
func (s *ByteStream) Set(b []byte) {
	s.buf = append(s.buf[:0], b...)
}

// Reset empties the stream without releasing capacity.
func (s *ByteStream) Reset() {
	s.buf = s.buf[:0]
}

// Bytes returns the current contents.
func (s *ByteStream) Bytes() []byte {
	return s.buf
}

// Len returns the number of held bytes.
func (s *ByteStream) Len() int {
	return len(s.buf)
}

// Buffer exposes the backing slice for in-place encoders that append to it.
// The caller must hand the result back through SetBuffer.
func (s *ByteStream) Buffer() []byte {
	return s.buf[:0]
}

// SetBuffer adopts b, typically the result of appending to Buffer().
func (s *ByteStream) SetBuffer(b []byte) {
	s.buf = b
}
