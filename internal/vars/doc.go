// Package vars holds the variable metadata a program point is inferred
// over: the variable arena, representation types, derivations linking a
// derived variable back to the sequence it was computed from, and the
// externally supplied equality classes.
//
// Variables are addressed by their ID, which is also their position in the
// arena and in every sample tuple. Derivations refer to other variables by
// ID, never by pointer, so an arena can be shared read-only by every slice
// of a point.
package vars
