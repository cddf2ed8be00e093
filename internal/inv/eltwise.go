package inv

import (
	"cmp"
	"fmt"
)

// EltwiseOrder relates each element of a sequence to its successor.
type EltwiseOrder[T cmp.Ordered] struct {
	base
	canBeEq, canBeLt, canBeGt bool
	seen                      int
}

func newEltwiseOrder[T cmp.Ordered](b base) *EltwiseOrder[T] {
	return &EltwiseOrder[T]{base: b}
}

func (e *EltwiseOrder[T]) Kind() Kind { return KindEltwiseOrder }

func (e *EltwiseOrder[T]) Add(seq []T, _, count int) {
	if len(seq) < 2 {
		return
	}
	for i := 1; i < len(seq); i++ {
		switch cmp.Compare(seq[i-1], seq[i]) {
		case 0:
			e.canBeEq = true
		case -1:
			e.canBeLt = true
		default:
			e.canBeGt = true
		}
	}
	if e.canBeLt && e.canBeGt {
		e.falsify(ReasonNoOrder)
		return
	}
	e.seen += count
}

func (e *EltwiseOrder[T]) Relation() string {
	return relation(e.canBeLt, e.canBeEq, e.canBeGt)
}

func (e *EltwiseOrder[T]) Justification() Justification {
	switch {
	case e.falsified:
		return Never
	case e.seen == 0:
		return Unknown
	case e.canBeLt || e.canBeGt:
		return halfChance(e.seen)
	}
	return Justified
}

func (e *EltwiseOrder[T]) Format() string {
	op := e.Relation()
	if op == "" {
		return fmt.Sprintf("%s elements ?cmp?", e.name(0))
	}
	return fmt.Sprintf("%s sorted by %s", e.name(0), op)
}

func (e *EltwiseOrder[T]) IsSameFormula(other Invariant) bool {
	o, ok := other.(*EltwiseOrder[T])
	return ok && e.canBeEq == o.canBeEq && e.canBeLt == o.canBeLt && e.canBeGt == o.canBeGt
}
