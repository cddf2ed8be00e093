// Package ppt holds program points and their slices.
//
// A Slice owns the candidate invariants over one tuple of one to three
// variables. It counts accepted samples in 2^k modification buckets, one
// bit per variable with the first variable as the most significant bit,
// and hands each sample to every live candidate in its native Go types.
//
// A Point owns the slices over its variables, the equality invariants of
// its equality classes, the suppression engine and the obviousness
// filters. Points are single-threaded; independent points may be fed from
// different goroutines.
package ppt
