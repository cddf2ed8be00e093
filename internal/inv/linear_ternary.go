package inv

import (
	"fmt"

	"go.uber.org/zap"
)

// MinTriples is the number of distinct triples a plane fit waits for.
const MinTriples = 5

type triple struct{ x, y, z int64 }

// LinearTernary is z = a*x + b*y + c over integers.
type LinearTernary struct {
	base
	a, b, c int64
	locked  bool
	cache   []triple
}

func newLinearTernary(b base) *LinearTernary {
	return &LinearTernary{base: b, cache: make([]triple, 0, MinTriples)}
}

func (l *LinearTernary) Kind() Kind { return KindLinearTernary }

// Coefficients returns a, b, c and whether they are fixed yet.
func (l *LinearTernary) Coefficients() (a, b, c int64, ok bool) {
	return l.a, l.b, l.c, l.locked
}

func (l *LinearTernary) Add(x, y, z int64, _, _ int) {
	if l.locked {
		if !l.satisfies(triple{x, y, z}) {
			l.falsify(ReasonCounterexample)
		}
		return
	}

	t := triple{x, y, z}
	for _, c := range l.cache {
		if c == t {
			return
		}
	}
	l.cache = append(l.cache, t)
	if len(l.cache) < MinTriples {
		return
	}

	if !l.fitFirstPlane() {
		return
	}
	for _, c := range l.cache {
		if !l.satisfies(c) {
			l.falsify(ReasonCounterexample)
			return
		}
	}
	l.cache = nil
}

// fitFirstPlane solves the plane through the first cached triples whose
// (x, y) projections are not collinear.
func (l *LinearTernary) fitFirstPlane() bool {
	n := len(l.cache)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				p, q, r := l.cache[i], l.cache[j], l.cache[k]
				det := p.x*(q.y-r.y) - p.y*(q.x-r.x) + (q.x*r.y - r.x*q.y)
				if det == 0 {
					continue
				}
				da := p.z*(q.y-r.y) - p.y*(q.z-r.z) + (q.z*r.y - r.z*q.y)
				db := p.x*(q.z-r.z) - p.z*(q.x-r.x) + (q.x*r.z - r.x*q.z)
				dc := p.x*(q.y*r.z-r.y*q.z) - p.y*(q.x*r.z-r.x*q.z) + p.z*(q.x*r.y-r.x*q.y)
				if da%det != 0 || db%det != 0 || dc%det != 0 {
					l.falsify(ReasonNonIntegral)
					return false
				}
				l.a, l.b, l.c = da/det, db/det, dc/det
				l.locked = true
				l.logger.Debug("plane fit",
					zap.Int("id", l.id),
					zap.Int64("a", l.a),
					zap.Int64("b", l.b),
					zap.Int64("c", l.c),
				)
				return true
			}
		}
	}
	l.falsify(ReasonDegenerate)
	return false
}

func (l *LinearTernary) satisfies(t triple) bool {
	return t.z == l.a*t.x+l.b*t.y+l.c
}

func (l *LinearTernary) Justification() Justification {
	switch {
	case l.falsified:
		return Never
	case !l.locked:
		return Unknown
	}
	return Justified
}

func (l *LinearTernary) Format() string {
	x, y, z := l.name(0), l.name(1), l.name(2)
	if !l.locked {
		return fmt.Sprintf("%s = ? * %s + ? * %s + ?", z, x, y)
	}
	return fmt.Sprintf("%s = %s", z, linearTerms([]int64{l.a, l.b}, []string{x, y}, l.c))
}

func (l *LinearTernary) IsSameFormula(other Invariant) bool {
	o, ok := other.(*LinearTernary)
	return ok && l.locked && o.locked && l.a == o.a && l.b == o.b && l.c == o.c
}
