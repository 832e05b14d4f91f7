package signal

// Mode says how a value crosses a block boundary.
type Mode uint8

const (
	// ByValue: the receiver gets its own copy (scalars).
	ByValue Mode = iota
	// ByReference: the receiver gets a read-only view of storage owned by
	// the producing block, valid until that block's next call.
	ByReference
)

func (m Mode) String() string {
	if m == ByReference {
		return "by-reference"
	}
	return "by-value"
}

// Pass fixes, for one signal kind, the stored type S a block keeps in its
// state and the crossing type B handed to the next block.
//
// Cross must not allocate. Store copies a crossing value into owned storage,
// which is how a block retains an input beyond the current call.
type Pass[S, B any] interface {
	Mode() Mode
	Cross(stored *S) B
	Store(dst *S, in B)
}

// ScalarPass crosses scalars by copy.
type ScalarPass[T Scalar] struct{}

func (ScalarPass[T]) Mode() Mode { return ByValue }
func (ScalarPass[T]) Cross(s *T) T { return *s }
func (ScalarPass[T]) Store(dst *T, in T) { *dst = in }

// MatrixPass crosses a matrix as a pointer to the owner's storage.
type MatrixPass[T Scalar] struct{}

func (MatrixPass[T]) Mode() Mode { return ByReference }
func (MatrixPass[T]) Cross(s *Matrix[T]) *Matrix[T] { return s }

// Store copies in into dst. A zero Matrix value adopts the shape of in on
// first use; afterwards shapes must match.
func (MatrixPass[T]) Store(dst *Matrix[T], in *Matrix[T]) {
	if dst.data == nil {
		*dst = *NewMatrix[T](in.rows, in.cols)
	}
	dst.CopyFrom(in)
}

// BytesPass crosses a byte stream as a borrowed slice.
type BytesPass struct{}

func (BytesPass) Mode() Mode { return ByReference }
func (BytesPass) Cross(s *ByteStream) []byte { return s.Bytes() }
func (BytesPass) Store(dst *ByteStream, in []byte) { dst.Set(in) }

func combine(modes ...Mode) Mode {
	for _, m := range modes {
		if m == ByReference {
			return ByReference
		}
	}
	return ByValue
}
