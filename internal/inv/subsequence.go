package inv

import (
	"fmt"

	"github.com/gnolang/tinfer/internal/vars"
)

// SubSequence holds when one sequence occurs contiguously inside the
// other.
type SubSequence[T comparable] struct {
	base
	var1InVar2, var2InVar1 bool
	seen                   int
}

func newSubSequence[T comparable](b base) *SubSequence[T] {
	return &SubSequence[T]{base: b, var1InVar2: true, var2InVar1: true}
}

func (s *SubSequence[T]) Kind() Kind { return KindSubSequence }

func (s *SubSequence[T]) Add(x, y []T, _, count int) {
	if s.var1InVar2 && !isSubarray(x, y) {
		s.var1InVar2 = false
	}
	if s.var2InVar1 && !isSubarray(y, x) {
		s.var2InVar1 = false
	}
	if !s.var1InVar2 && !s.var2InVar1 {
		s.falsify(ReasonNotSubsequence)
		return
	}
	s.seen += count
}

// Holds reports whether sub has always been a subsequence of super. Both
// must be variables of this invariant's slice.
func (s *SubSequence[T]) Holds(sub, super vars.ID) bool {
	if s.falsified {
		return false
	}
	ids := s.VarIDs()
	switch {
	case sub == ids[0] && super == ids[1]:
		return s.var1InVar2
	case sub == ids[1] && super == ids[0]:
		return s.var2InVar1
	}
	return false
}

// Directions returns which containments still hold, in slice order.
func (s *SubSequence[T]) Directions() (var1InVar2, var2InVar1 bool) {
	return s.var1InVar2, s.var2InVar1
}

func (s *SubSequence[T]) Justification() Justification {
	switch {
	case s.falsified:
		return Never
	case s.seen == 0:
		return Unknown
	}
	return Justified
}

func (s *SubSequence[T]) Format() string {
	x, y := s.name(0), s.name(1)
	switch {
	case s.var1InVar2 && s.var2InVar1:
		return fmt.Sprintf("%s == %s (as subsequences)", x, y)
	case s.var1InVar2:
		return fmt.Sprintf("%s is a subsequence of %s", x, y)
	}
	return fmt.Sprintf("%s is a subsequence of %s", y, x)
}

func (s *SubSequence[T]) IsSameFormula(other Invariant) bool {
	o, ok := other.(*SubSequence[T])
	return ok && s.var1InVar2 == o.var1InVar2 && s.var2InVar1 == o.var2InVar1
}

// isSubarray reports whether sub occurs contiguously in seq. The empty
// sequence occurs in every sequence.
func isSubarray[T comparable](sub, seq []T) bool {
	if len(sub) > len(seq) {
		return false
	}
outer:
	for i := 0; i+len(sub) <= len(seq); i++ {
		for j := range sub {
			if seq[i+j] != sub[j] {
				continue outer
			}
		}
		return true
	}
	return false
}
