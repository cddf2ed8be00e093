package inv

import "fmt"

// extreme tracks the weight of the most extreme value seen and of its
// nearest distinct neighbour, in the direction given by beyond.
type extreme struct {
	beyond   func(a, b int64) bool
	first    int64
	second   int64
	nFirst   int
	nSecond  int
	distinct int
}

func (e *extreme) add(v int64, count int) {
	switch {
	case e.distinct == 0:
		e.first, e.nFirst, e.distinct = v, count, 1
	case v == e.first:
		e.nFirst += count
	case e.beyond(v, e.first):
		e.second, e.nSecond = e.first, e.nFirst
		e.first, e.nFirst, e.distinct = v, count, 2
	case e.distinct == 1:
		e.second, e.nSecond, e.distinct = v, count, 2
	case v == e.second:
		e.nSecond += count
	case e.beyond(v, e.second):
		e.second, e.nSecond = v, count
	}
}

// justified accepts a bound whose value was hit at least three times and
// either more than twice as often as a uniform spread over r predicts, or
// more than half as often together with its neighbour.
func (e *extreme) justified(r *valueRange) bool {
	if e.nFirst < 3 {
		return false
	}
	width := float64(r.max) - float64(r.min) + 1
	avg := float64(r.n) / width
	if float64(e.nFirst) > 2*avg {
		return true
	}
	return e.distinct == 2 && float64(e.nFirst) > avg/2 && float64(e.nSecond) > avg/2
}

func below(a, b int64) bool { return a < b }
func above(a, b int64) bool { return a > b }

// LowerBound is x >= min over integers. Bounds move with the data and
// are never falsified; only their justification changes.
type LowerBound struct {
	base
	valueRange
	low extreme
}

func newLowerBound(b base) *LowerBound {
	return &LowerBound{base: b, low: extreme{beyond: below}}
}

func (l *LowerBound) Kind() Kind { return KindLowerBound }

func (l *LowerBound) Add(v int64, _, count int) {
	l.add(v, count)
	l.low.add(v, count)
}

func (l *LowerBound) Min() int64 { return l.min }

func (l *LowerBound) Justification() Justification {
	switch {
	case l.n == 0:
		return Unknown
	case l.low.justified(&l.valueRange):
		return Justified
	}
	return Never
}

func (l *LowerBound) Format() string { return fmt.Sprintf("%s >= %d", l.name(0), l.min) }

func (l *LowerBound) IsSameFormula(other Invariant) bool {
	o, ok := other.(*LowerBound)
	return ok && o.n > 0 && l.n > 0 && o.min == l.min
}

// UpperBound is x <= max over integers.
type UpperBound struct {
	base
	valueRange
	high extreme
}

func newUpperBound(b base) *UpperBound {
	return &UpperBound{base: b, high: extreme{beyond: above}}
}

func (u *UpperBound) Kind() Kind { return KindUpperBound }

func (u *UpperBound) Add(v int64, _, count int) {
	u.add(v, count)
	u.high.add(v, count)
}

func (u *UpperBound) Max() int64 { return u.max }

func (u *UpperBound) Justification() Justification {
	switch {
	case u.n == 0:
		return Unknown
	case u.high.justified(&u.valueRange):
		return Justified
	}
	return Never
}

func (u *UpperBound) Format() string { return fmt.Sprintf("%s <= %d", u.name(0), u.max) }

func (u *UpperBound) IsSameFormula(other Invariant) bool {
	o, ok := other.(*UpperBound)
	return ok && o.n > 0 && u.n > 0 && o.max == u.max
}
