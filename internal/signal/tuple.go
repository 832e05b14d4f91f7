package signal

// Tuples of signals are signals. Each member crosses independently through
// its own Pass and member order is preserved.

// Tuple1 holds 1 signal.
type Tuple1[A any] struct {
	V0 A
}

// Tuple2 holds 2 signals.
type Tuple2[A, B any] struct {
	V0 A
	V1 B
}

// Tuple3 holds 3 signals.
type Tuple3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

// Tuple4 holds 4 signals.
type Tuple4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

// Tuple5 holds 5 signals.
type Tuple5[A, B, C, D, E any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
}

// Tuple6 holds 6 signals.
type Tuple6[A, B, C, D, E, F any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
}

// Tuple7 holds 7 signals.
type Tuple7[A, B, C, D, E, F, G any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
}

// Tuple8 holds 8 signals.
type Tuple8[A, B, C, D, E, F, G, H any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
	V7 H
}

// TuplePass1 crosses a Tuple1 member by member.
type TuplePass1[S0, B0 any] struct {
	P0 Pass[S0, B0]
}

func (t TuplePass1[S0, B0]) Mode() Mode {
	return combine(t.P0.Mode())
}

func (t TuplePass1[S0, B0]) Cross(s *Tuple1[S0]) Tuple1[B0] {
	return Tuple1[B0]{
		V0: t.P0.Cross(&s.V0),
	}
}

func (t TuplePass1[S0, B0]) Store(dst *Tuple1[S0], in Tuple1[B0]) {
	t.P0.Store(&dst.V0, in.V0)
}

// TuplePass2 crosses a Tuple2 member by member.
type TuplePass2[S0, B0, S1, B1 any] struct {
	P0 Pass[S0, B0]
	P1 Pass[S1, B1]
}

func (t TuplePass2[S0, B0, S1, B1]) Mode() Mode {
	return combine(t.P0.Mode(), t.P1.Mode())
}

func (t TuplePass2[S0, B0, S1, B1]) Cross(s *Tuple2[S0, S1]) Tuple2[B0, B1] {
	return Tuple2[B0, B1]{
		V0: t.P0.Cross(&s.V0),
		V1: t.P1.Cross(&s.V1),
	}
}

func (t TuplePass2[S0, B0, S1, B1]) Store(dst *Tuple2[S0, S1], in Tuple2[B0, B1]) {
	t.P0.Store(&dst.V0, in.V0)
	t.P1.Store(&dst.V1, in.V1)
}

// TuplePass3 crosses a Tuple3 member by member.
type TuplePass3[S0, B0, S1, B1, S2, B2 any] struct {
	P0 Pass[S0, B0]
	P1 Pass[S1, B1]
	P2 Pass[S2, B2]
}

func (t TuplePass3[S0, B0, S1, B1, S2, B2]) Mode() Mode {
	return combine(t.P0.Mode(), t.P1.Mode(), t.P2.Mode())
}

func (t TuplePass3[S0, B0, S1, B1, S2, B2]) Cross(s *Tuple3[S0, S1, S2]) Tuple3[B0, B1, B2] {
	return Tuple3[B0, B1, B2]{
		V0: t.P0.Cross(&s.V0),
		V1: t.P1.Cross(&s.V1),
		V2: t.P2.Cross(&s.V2),
	}
}

func (t TuplePass3[S0, B0, S1, B1, S2, B2]) Store(dst *Tuple3[S0, S1, S2], in Tuple3[B0, B1, B2]) {
	t.P0.Store(&dst.V0, in.V0)
	t.P1.Store(&dst.V1, in.V1)
	t.P2.Store(&dst.V2, in.V2)
}

// TuplePass4 crosses a Tuple4 member by member.
type TuplePass4[S0, B0, S1, B1, S2, B2, S3, B3 any] struct {
	P0 Pass[S0, B0]
	P1 Pass[S1, B1]
	P2 Pass[S2, B2]
	P3 Pass[S3, B3]
}

func (t TuplePass4[S0, B0, S1, B1, S2, B2, S3, B3]) Mode() Mode {
	return combine(t.P0.Mode(), t.P1.Mode(), t.P2.Mode(), t.P3.Mode())
}

func (t TuplePass4[S0, B0, S1, B1, S2, B2, S3, B3]) Cross(s *Tuple4[S0, S1, S2, S3]) Tuple4[B0, B1, B2, B3] {
	return Tuple4[B0, B1, B2, B3]{
		V0: t.P0.Cross(&s.V0),
		V1: t.P1.Cross(&s.V1),
		V2: t.P2.Cross(&s.V2),
		V3: t.P3.Cross(&s.V3),
	}
}

func (t TuplePass4[S0, B0, S1, B1, S2, B2, S3, B3]) Store(dst *Tuple4[S0, S1, S2, S3], in Tuple4[B0, B1, B2, B3]) {
	t.P0.Store(&dst.V0, in.V0)
	t.P1.Store(&dst.V1, in.V1)
	t.P2.Store(&dst.V2, in.V2)
	t.P3.Store(&dst.V3, in.V3)
}

// TuplePass5 crosses a Tuple5 member by member.
type TuplePass5[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4 any] struct {
	P0 Pass[S0, B0]
	P1 Pass[S1, B1]
	P2 Pass[S2, B2]
	P3 Pass[S3, B3]
	P4 Pass[S4, B4]
}

func (t TuplePass5[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4]) Mode() Mode {
	return combine(t.P0.Mode(), t.P1.Mode(), t.P2.Mode(), t.P3.Mode(), t.P4.Mode())
}

func (t TuplePass5[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4]) Cross(s *Tuple5[S0, S1, S2, S3, S4]) Tuple5[B0, B1, B2, B3, B4] {
	return Tuple5[B0, B1, B2, B3, B4]{
		V0: t.P0.Cross(&s.V0),
		V1: t.P1.Cross(&s.V1),
		V2: t.P2.Cross(&s.V2),
		V3: t.P3.Cross(&s.V3),
		V4: t.P4.Cross(&s.V4),
	}
}

func (t TuplePass5[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4]) Store(dst *Tuple5[S0, S1, S2, S3, S4], in Tuple5[B0, B1, B2, B3, B4]) {
	t.P0.Store(&dst.V0, in.V0)
	t.P1.Store(&dst.V1, in.V1)
	t.P2.Store(&dst.V2, in.V2)
	t.P3.Store(&dst.V3, in.V3)
	t.P4.Store(&dst.V4, in.V4)
}

// TuplePass6 crosses a Tuple6 member by member.
type TuplePass6[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5 any] struct {
	P0 Pass[S0, B0]
	P1 Pass[S1, B1]
	P2 Pass[S2, B2]
	P3 Pass[S3, B3]
	P4 Pass[S4, B4]
	P5 Pass[S5, B5]
}

func (t TuplePass6[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5]) Mode() Mode {
	return combine(t.P0.Mode(), t.P1.Mode(), t.P2.Mode(), t.P3.Mode(), t.P4.Mode(), t.P5.Mode())
}

func (t TuplePass6[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5]) Cross(s *Tuple6[S0, S1, S2, S3, S4, S5]) Tuple6[B0, B1, B2, B3, B4, B5] {
	return Tuple6[B0, B1, B2, B3, B4, B5]{
		V0: t.P0.Cross(&s.V0),
		V1: t.P1.Cross(&s.V1),
		V2: t.P2.Cross(&s.V2),
		V3: t.P3.Cross(&s.V3),
		V4: t.P4.Cross(&s.V4),
		V5: t.P5.Cross(&s.V5),
	}
}

func (t TuplePass6[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5]) Store(dst *Tuple6[S0, S1, S2, S3, S4, S5], in Tuple6[B0, B1, B2, B3, B4, B5]) {
	t.P0.Store(&dst.V0, in.V0)
	t.P1.Store(&dst.V1, in.V1)
	t.P2.Store(&dst.V2, in.V2)
	t.P3.Store(&dst.V3, in.V3)
	t.P4.Store(&dst.V4, in.V4)
	t.P5.Store(&dst.V5, in.V5)
}

// TuplePass7 crosses a Tuple7 member by member.
type TuplePass7[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6 any] struct {
	P0 Pass[S0, B0]
	P1 Pass[S1, B1]
	P2 Pass[S2, B2]
	P3 Pass[S3, B3]
	P4 Pass[S4, B4]
	P5 Pass[S5, B5]
	P6 Pass[S6, B6]
}

func (t TuplePass7[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6]) Mode() Mode {
	return combine(t.P0.Mode(), t.P1.Mode(), t.P2.Mode(), t.P3.Mode(), t.P4.Mode(), t.P5.Mode(), t.P6.Mode())
}

func (t TuplePass7[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6]) Cross(s *Tuple7[S0, S1, S2, S3, S4, S5, S6]) Tuple7[B0, B1, B2, B3, B4, B5, B6] {
	return Tuple7[B0, B1, B2, B3, B4, B5, B6]{
		V0: t.P0.Cross(&s.V0),
		V1: t.P1.Cross(&s.V1),
		V2: t.P2.Cross(&s.V2),
		V3: t.P3.Cross(&s.V3),
		V4: t.P4.Cross(&s.V4),
		V5: t.P5.Cross(&s.V5),
		V6: t.P6.Cross(&s.V6),
	}
}

func (t TuplePass7[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6]) Store(dst *Tuple7[S0, S1, S2, S3, S4, S5, S6], in Tuple7[B0, B1, B2, B3, B4, B5, B6]) {
	t.P0.Store(&dst.V0, in.V0)
	t.P1.Store(&dst.V1, in.V1)
	t.P2.Store(&dst.V2, in.V2)
	t.P3.Store(&dst.V3, in.V3)
	t.P4.Store(&dst.V4, in.V4)
	t.P5.Store(&dst.V5, in.V5)
	t.P6.Store(&dst.V6, in.V6)
}

// TuplePass8 crosses a Tuple8 member by member.
type TuplePass8[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6, S7, B7 any] struct {
	P0 Pass[S0, B0]
	P1 Pass[S1, B1]
	P2 Pass[S2, B2]
	P3 Pass[S3, B3]
	P4 Pass[S4, B4]
	P5 Pass[S5, B5]
	P6 Pass[S6, B6]
	P7 Pass[S7, B7]
}

func (t TuplePass8[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6, S7, B7]) Mode() Mode {
	return combine(t.P0.Mode(), t.P1.Mode(), t.P2.Mode(), t.P3.Mode(), t.P4.Mode(), t.P5.Mode(), t.P6.Mode(), t.P7.Mode())
}

func (t TuplePass8[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6, S7, B7]) Cross(s *Tuple8[S0, S1, S2, S3, S4, S5, S6, S7]) Tuple8[B0, B1, B2, B3, B4, B5, B6, B7] {
	return Tuple8[B0, B1, B2, B3, B4, B5, B6, B7]{
		V0: t.P0.Cross(&s.V0),
		V1: t.P1.Cross(&s.V1),
		V2: t.P2.Cross(&s.V2),
		V3: t.P3.Cross(&s.V3),
		V4: t.P4.Cross(&s.V4),
		V5: t.P5.Cross(&s.V5),
		V6: t.P6.Cross(&s.V6),
		V7: t.P7.Cross(&s.V7),
	}
}

func (t TuplePass8[S0, B0, S1, B1, S2, B2, S3, B3, S4, B4, S5, B5, S6, B6, S7, B7]) Store(dst *Tuple8[S0, S1, S2, S3, S4, S5, S6, S7], in Tuple8[B0, B1, B2, B3, B4, B5, B6, B7]) {
	t.P0.Store(&dst.V0, in.V0)
	t.P1.Store(&dst.V1, in.V1)
	t.P2.Store(&dst.V2, in.V2)
	t.P3.Store(&dst.V3, in.V3)
	t.P4.Store(&dst.V4, in.V4)
	t.P5.Store(&dst.V5, in.V5)
	t.P6.Store(&dst.V6, in.V6)
	t.P7.Store(&dst.V7, in.V7)
}
