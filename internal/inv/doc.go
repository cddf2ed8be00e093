// Package inv defines candidate invariants and the factories that create
// them for a slice.
//
// An invariant is a hypothesis about the values of a fixed tuple of
// variables, for example "y = 2 * x + 1" or "x in seq[]". Each variant
// keeps the statistics it needs and falsifies itself on the first sample
// that contradicts it. Falsification is permanent. Suppression is a flag
// owned by the suppression engine and may be set and cleared many times.
//
// Variants belong to a family, selected by the shape of their slice:
//
//	Unary[T]           one variable of type T
//	Binary[T]          two variables of the same type T
//	SequenceScalar[T]  a sequence of T and a scalar T, in either slice order
//	Ternary[T]         three variables of type T
//
// The slice converts each sample to the family's native Go types before
// calling Add, so variants never see sample.Value.
package inv
