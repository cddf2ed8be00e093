package inv

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// OneOf holds while a scalar takes at most a configured number of
// distinct values.
type OneOf[T cmp.Ordered] struct {
	base
	limit  int
	values []T
	format func(T) string
}

func newOneOf[T cmp.Ordered](b base, limit int, format func(T) string) *OneOf[T] {
	return &OneOf[T]{base: b, limit: limit, format: format}
}

func (o *OneOf[T]) Kind() Kind { return KindOneOf }

func (o *OneOf[T]) Add(v T, _, _ int) {
	i, found := slices.BinarySearch(o.values, v)
	if found {
		return
	}
	if len(o.values) == o.limit {
		o.falsify(ReasonTooManyValues)
		return
	}
	o.values = slices.Insert(o.values, i, v)
}

// Values returns the distinct values seen, in ascending order.
func (o *OneOf[T]) Values() []T { return slices.Clone(o.values) }

func (o *OneOf[T]) Justification() Justification {
	switch {
	case o.falsified:
		return Never
	case len(o.values) == 0:
		return Unknown
	}
	return Justified
}

func (o *OneOf[T]) Format() string {
	x := o.name(0)
	if len(o.values) == 1 {
		return fmt.Sprintf("%s == %s", x, o.format(o.values[0]))
	}
	parts := make([]string, len(o.values))
	for i, v := range o.values {
		parts[i] = o.format(v)
	}
	return fmt.Sprintf("%s one of { %s }", x, strings.Join(parts, ", "))
}

func (o *OneOf[T]) IsSameFormula(other Invariant) bool {
	p, ok := other.(*OneOf[T])
	return ok && slices.Equal(o.values, p.values)
}
