package inv

import (
	"fmt"
	"slices"
)

// Member is x in seq[].
type Member[T comparable] struct {
	base
	// seqFirst records the slice order, for naming only.
	seqFirst bool
	seen     int
}

func newMember[T comparable](b base, seqFirst bool) *Member[T] {
	return &Member[T]{base: b, seqFirst: seqFirst}
}

func (m *Member[T]) Kind() Kind { return KindMember }

func (m *Member[T]) Add(seq []T, x T, _, count int) {
	if !slices.Contains(seq, x) {
		m.falsify(ReasonNotMember)
		return
	}
	m.seen += count
}

// Vars returns the scalar and sequence slice positions.
func (m *Member[T]) Vars() (scalar, seq int) {
	if m.seqFirst {
		return 1, 0
	}
	return 0, 1
}

func (m *Member[T]) Justification() Justification {
	switch {
	case m.falsified:
		return Never
	case m.seen == 0:
		return Unknown
	}
	return Justified
}

func (m *Member[T]) Format() string {
	scl, seq := m.Vars()
	return fmt.Sprintf("%s in %s", m.name(scl), m.name(seq))
}

// IsSameFormula holds for any two membership invariants.
func (m *Member[T]) IsSameFormula(other Invariant) bool {
	return other.Kind() == KindMember
}
