// Package promote computes the minimal scalar kind that holds two operands of
// different kinds without loss, and provides typed conversions for the pairs
// blocks combine.
//
// The kind-level table is total: every pair of the nine scalar kinds has an
// output. Typed pairs (see Pair) are listed explicitly, so a block generic over
// a pair nobody declared fails to compile.
package promote

import (
	"fmt"

	"github.com/roach88/blockrt/internal/signal"
)

// widens lists, for each kind, the wider kinds that represent every one of
// its values exactly. bool widens to everything (0 and 1).
var widens = map[signal.Kind][]signal.Kind{
	signal.KindBool: {signal.KindU8, signal.KindI8, signal.KindU16, signal.KindI16, signal.KindU32, signal.KindI32, signal.KindF32, signal.KindF64},
	signal.KindU8:   {signal.KindU16, signal.KindI16, signal.KindU32, signal.KindI32, signal.KindF32, signal.KindF64},
	signal.KindI8:   {signal.KindI16, signal.KindI32, signal.KindF32, signal.KindF64},
	signal.KindU16:  {signal.KindU32, signal.KindI32, signal.KindF32, signal.KindF64},
	signal.KindI16:  {signal.KindI32, signal.KindF32, signal.KindF64},
	signal.KindU32:  {signal.KindF64},
	signal.KindI32:  {signal.KindF64},
	signal.KindF32:  {signal.KindF64},
	signal.KindF64:  {},
}

var table [len(signalKinds)][len(signalKinds)]signal.Kind

var signalKinds = [...]signal.Kind{
	signal.KindBool, signal.KindU8, signal.KindI8, signal.KindU16, signal.KindI16,
	signal.KindU32, signal.KindI32, signal.KindF32, signal.KindF64,
}

func init() {
	for _, l := range signalKinds {
		for _, r := range signalKinds {
			table[l][r] = resolve(l, r)
		}
	}
}

// Exact reports whether every value of from is exactly representable in to.
func Exact(from, to signal.Kind) bool {
	if from == to {
		return true
	}
	for _, k := range widens[from] {
		if k == to {
			return true
		}
	}
	return false
}

// Output returns the promoted kind for the pair (l, r).
// Output(T, T) == T and Output(l, r) == Output(r, l).
func Output(l, r signal.Kind) (signal.Kind, error) {
	if !l.Valid() || !r.Valid() {
		return 0, fmt.Errorf("promote: invalid kind pair (%s, %s)", l, r)
	}
	return table[l][r], nil
}

// MustOutput is Output for kinds known to be valid. Panics otherwise.
func MustOutput(l, r signal.Kind) signal.Kind {
	k, err := Output(l, r)
	if err != nil {
		panic(err)
	}
	return k
}

// resolve picks r if l widens into it, l if r widens into it, otherwise the
// first kind in declaration order both widen into. float64 holds every
// other kind exactly, so a result always exists.
func resolve(l, r signal.Kind) signal.Kind {
	switch {
	case Exact(l, r):
		return r
	case Exact(r, l):
		return l
	}
	for _, k := range signalKinds {
		if Exact(l, k) && Exact(r, k) {
			return k
		}
	}
	return signal.KindF64
}
