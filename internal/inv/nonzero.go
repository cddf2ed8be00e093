package inv

import (
	"fmt"
	"math"
)

// valueRange tracks the extent and weight of the integers seen.
type valueRange struct {
	min, max int64
	n        int
}

func (r *valueRange) add(v int64, count int) {
	if r.n == 0 || v < r.min {
		r.min = v
	}
	if r.n == 0 || v > r.max {
		r.max = v
	}
	r.n += count
}

// nonZeroJustification: a value drawn uniformly from [min, max] is
// non-zero with probability 1 - 1/(max-min+1); the chance that n draws all
// miss zero by accident is that probability to the power n.
func (r *valueRange) nonZeroJustification() Justification {
	if r.n == 0 {
		return Unknown
	}
	width := float64(r.max) - float64(r.min) + 1
	p := 1 - 1/width
	return fromChance(math.Pow(p, float64(r.n)))
}

// NonZero is x != 0 over integers.
type NonZero struct {
	base
	valueRange
}

func newNonZero(b base) *NonZero { return &NonZero{base: b} }

func (z *NonZero) Kind() Kind { return KindNonZero }

func (z *NonZero) Add(v int64, _, count int) {
	if v == 0 {
		z.falsify(ReasonCounterexample)
		return
	}
	z.add(v, count)
}

func (z *NonZero) Justification() Justification {
	if z.falsified {
		return Never
	}
	return z.nonZeroJustification()
}

func (z *NonZero) Format() string { return fmt.Sprintf("%s != 0", z.name(0)) }

func (z *NonZero) IsSameFormula(other Invariant) bool {
	_, ok := other.(*NonZero)
	return ok
}

// EltNonZero is "no element of x[] is zero".
type EltNonZero struct {
	base
	valueRange
}

func newEltNonZero(b base) *EltNonZero { return &EltNonZero{base: b} }

func (z *EltNonZero) Kind() Kind { return KindEltNonZero }

func (z *EltNonZero) Add(seq []int64, _, count int) {
	for _, v := range seq {
		if v == 0 {
			z.falsify(ReasonCounterexample)
			return
		}
	}
	for _, v := range seq {
		z.add(v, count)
	}
}

func (z *EltNonZero) Justification() Justification {
	if z.falsified {
		return Never
	}
	return z.nonZeroJustification()
}

func (z *EltNonZero) Format() string { return fmt.Sprintf("%s elements != 0", z.name(0)) }

func (z *EltNonZero) IsSameFormula(other Invariant) bool {
	_, ok := other.(*EltNonZero)
	return ok
}
