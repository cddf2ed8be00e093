package inv

import (
	"fmt"
	"math"
	"slices"
)

// nonModulusLimit caps the distinct values NonModulus remembers.
const nonModulusLimit = 32

// distance is |a - b|, exact over the whole int64 range.
func distance(a, b int64) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}

// residue is v mod m in [0, m).
func residue(v int64, m uint64) uint64 {
	if v >= 0 {
		return uint64(v) % m
	}
	r := uint64(-v) % m
	if r == 0 {
		return 0
	}
	return m - r
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Modulus is x = r (mod m) for the largest m > 1 dividing every
// difference between the values seen.
type Modulus struct {
	base
	first int64
	m     uint64
	n     int
}

func newModulus(b base) *Modulus { return &Modulus{base: b} }

func (d *Modulus) Kind() Kind { return KindModulus }

func (d *Modulus) Add(v int64, _, count int) {
	if d.falsified {
		return
	}
	if d.n == 0 {
		d.first = v
	}
	d.n += count
	d.m = gcd(d.m, distance(v, d.first))
	if d.m == 1 {
		d.falsify(ReasonNoModulus)
	}
}

// Modulus returns r and m, or false while every value seen is the same.
func (d *Modulus) Modulus() (r, m uint64, ok bool) {
	if d.m < 2 {
		return 0, 0, false
	}
	return residue(d.first, d.m), d.m, true
}

// Justification: each value lands on the residue by accident with
// probability 1/m.
func (d *Modulus) Justification() Justification {
	switch {
	case d.falsified:
		return Never
	case d.m < 2:
		return Unknown
	}
	return fromChance(math.Pow(1/float64(d.m), float64(d.n)))
}

func (d *Modulus) Format() string {
	r, m, ok := d.Modulus()
	if !ok {
		return fmt.Sprintf("%s = ? (mod ?)", d.name(0))
	}
	return fmt.Sprintf("%s = %d (mod %d)", d.name(0), r, m)
}

func (d *Modulus) IsSameFormula(other Invariant) bool {
	o, ok := other.(*Modulus)
	if !ok {
		return false
	}
	r1, m1, ok1 := d.Modulus()
	r2, m2, ok2 := o.Modulus()
	return ok1 && ok2 && r1 == r2 && m1 == m2
}

// NonModulus is x != r (mod m) for the smallest m > 2 whose residues the
// values cover all but one of.
type NonModulus struct {
	base
	values []int64
	n      int
	r, m   uint64
}

func newNonModulus(b base) *NonModulus { return &NonModulus{base: b} }

func (d *NonModulus) Kind() Kind { return KindNonModulus }

func (d *NonModulus) Add(v int64, _, count int) {
	if d.falsified {
		return
	}
	d.n += count
	i, found := slices.BinarySearch(d.values, v)
	if found {
		return
	}
	if len(d.values) == nonModulusLimit {
		d.falsify(ReasonTooManyValues)
		return
	}
	d.values = slices.Insert(d.values, i, v)
	d.r, d.m = d.search()
}

// search needs twice as many distinct values as the modulus it accepts.
func (d *NonModulus) search() (r, m uint64) {
	for m = 3; m <= uint64(len(d.values)/2); m++ {
		seen := make([]bool, m)
		hit := 0
		for _, v := range d.values {
			if k := residue(v, m); !seen[k] {
				seen[k] = true
				hit++
			}
		}
		if hit == int(m)-1 {
			return uint64(slices.Index(seen, false)), m
		}
	}
	return 0, 0
}

// NonModulus returns r and m, or false when no modulus leaves exactly one
// residue uncovered.
func (d *NonModulus) NonModulus() (r, m uint64, ok bool) {
	return d.r, d.m, d.m != 0
}

// Justification: m residues could have been the missing one, and each
// value avoids a given residue with probability 1 - 1/m.
func (d *NonModulus) Justification() Justification {
	switch {
	case d.falsified:
		return Never
	case d.n == 0:
		return Unknown
	case d.m == 0:
		return Never
	}
	m := float64(d.m)
	return fromChance(m * math.Pow(1-1/m, float64(d.n)))
}

func (d *NonModulus) Format() string {
	if d.m == 0 {
		return fmt.Sprintf("%s != ? (mod ?)", d.name(0))
	}
	return fmt.Sprintf("%s != %d (mod %d)", d.name(0), d.r, d.m)
}

func (d *NonModulus) IsSameFormula(other Invariant) bool {
	o, ok := other.(*NonModulus)
	return ok && d.m != 0 && d.r == o.r && d.m == o.m
}
