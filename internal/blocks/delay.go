package blocks

import (
	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// DelayParams configures a Delay.
type DelayParams[S any] struct {
	// IC is output while the first N samples accumulate.
	IC S
	// IsDelayed shortens the delay by one sample, for use inside algebraic
	// loops where the upstream value is already one tick old.
	IsDelayed bool
}

// Delay outputs its input from N ticks ago through a ring buffer of N
// samples. It works for any signal type through its Pass.
type Delay[S, B any] struct {
	pass         signal.Pass[S, B]
	samples      []S
	out          S
	index        int
	accumulating bool
}

// NewDelay builds an N-sample delay. Every sample slot and the output are
// seeded from p.IC so matrix and byte slots are sized before the first tick.
func NewDelay[S, B any](pass signal.Pass[S, B], n int, p *DelayParams[S]) *Delay[S, B] {
	mustPositive("samples", n)
	d := &Delay[S, B]{
		pass:         pass,
		samples:      make([]S, n),
		accumulating: true,
	}
	ic := pass.Cross(&p.IC)
	for i := range d.samples {
		pass.Store(&d.samples[i], ic)
	}
	pass.Store(&d.out, ic)
	return d
}

// Len returns N.
func (d *Delay[S, B]) Len() int { return len(d.samples) }

func (d *Delay[S, B]) effective(p *DelayParams[S]) int {
	n := len(d.samples)
	if p.IsDelayed {
		return n - 1
	}
	return n
}

func (d *Delay[S, B]) Process(p *DelayParams[S], _ block.Context, in B) B {
	n := len(d.samples)
	switch eff := d.effective(p); {
	case d.accumulating:
		d.pass.Store(&d.out, d.pass.Cross(&p.IC))
	case eff == 0:
		d.pass.Store(&d.out, in)
	default:
		d.pass.Store(&d.out, d.pass.Cross(&d.samples[(d.index+n-eff)%n]))
	}
	d.pass.Store(&d.samples[d.index], in)
	d.index++
	if d.index == n {
		d.index = 0
		d.accumulating = false
	}
	return d.pass.Cross(&d.out)
}

// Last returns the most recent output without advancing the buffer.
func (d *Delay[S, B]) Last() B { return d.pass.Cross(&d.out) }
