package inv

import (
	"cmp"
	"fmt"
	"slices"
)

// SeqComparison orders two sequences lexically.
type SeqComparison[T cmp.Ordered] struct {
	base
	canBeEq, canBeLt, canBeGt bool
}

func newSeqComparison[T cmp.Ordered](b base) *SeqComparison[T] {
	return &SeqComparison[T]{base: b}
}

func (c *SeqComparison[T]) Kind() Kind { return KindSeqComparison }

func (c *SeqComparison[T]) Add(x, y []T, _, _ int) {
	if len(x) == 0 || len(y) == 0 {
		return
	}
	switch slices.Compare(x, y) {
	case 0:
		c.canBeEq = true
	case -1:
		c.canBeLt = true
	default:
		c.canBeGt = true
	}
	if c.canBeLt && c.canBeGt {
		c.falsify(ReasonNoOrder)
	}
}

// Relation returns the operator seen so far, or "" before any comparable
// sample.
func (c *SeqComparison[T]) Relation() string {
	return relation(c.canBeLt, c.canBeEq, c.canBeGt)
}

// Justification is 1 - 0.5^n while one strict order has been seen, where
// n is the slice's sample count.
func (c *SeqComparison[T]) Justification() Justification {
	switch {
	case c.falsified:
		return Never
	case c.canBeLt || c.canBeGt:
		return halfChance(c.numSamples())
	case c.canBeEq:
		return Justified
	}
	return Unknown
}

func (c *SeqComparison[T]) Format() string {
	op := c.Relation()
	if op == "" {
		op = "?cmp?"
	}
	return fmt.Sprintf("%s %s %s (lexically)", c.name(0), op, c.name(1))
}

func (c *SeqComparison[T]) IsSameFormula(other Invariant) bool {
	o, ok := other.(*SeqComparison[T])
	return ok && c.canBeEq == o.canBeEq && c.canBeLt == o.canBeLt && c.canBeGt == o.canBeGt
}

// relation maps observed orderings to an operator.
func relation(lt, eq, gt bool) string {
	switch {
	case lt && gt:
		return ""
	case lt && eq:
		return "<="
	case lt:
		return "<"
	case gt && eq:
		return ">="
	case gt:
		return ">"
	case eq:
		return "=="
	}
	return ""
}
