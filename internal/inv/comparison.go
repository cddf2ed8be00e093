package inv

import (
	"cmp"
	"fmt"
)

// Comparison orders two scalars of the same type.
type Comparison[T cmp.Ordered] struct {
	base
	canBeEq, canBeLt, canBeGt bool
}

func newComparison[T cmp.Ordered](b base) *Comparison[T] {
	return &Comparison[T]{base: b}
}

func (c *Comparison[T]) Kind() Kind { return KindComparison }

func (c *Comparison[T]) Add(x, y T, _, _ int) {
	switch cmp.Compare(x, y) {
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

func (c *Comparison[T]) Relation() string {
	return relation(c.canBeLt, c.canBeEq, c.canBeGt)
}

func (c *Comparison[T]) Justification() Justification {
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

func (c *Comparison[T]) Format() string {
	op := c.Relation()
	if op == "" {
		op = "?cmp?"
	}
	return fmt.Sprintf("%s %s %s", c.name(0), op, c.name(1))
}

func (c *Comparison[T]) IsSameFormula(other Invariant) bool {
	o, ok := other.(*Comparison[T])
	return ok && c.canBeEq == o.canBeEq && c.canBeLt == o.canBeLt && c.canBeGt == o.canBeGt
}
