package ppt

import (
	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/sample"
	"github.com/gnolang/tinfer/internal/vars"
)

// dispatcher feeds one sample to every candidate of a slice.
type dispatcher func(invs []inv.Invariant, vals []sample.Value, mod, count int)

func asInt(v sample.Value) int64          { return v.(sample.IntValue).Val }
func asFloat(v sample.Value) float64      { return v.(sample.FloatValue).Val }
func asString(v sample.Value) string      { return v.(sample.StringValue).Val }
func asIntSeq(v sample.Value) []int64     { return v.(sample.IntSeq).Vals }
func asFloatSeq(v sample.Value) []float64 { return v.(sample.FloatSeq).Vals }
func asStringSeq(v sample.Value) []string { return v.(sample.StringSeq).Vals }

func unary[T any](conv func(sample.Value) T) dispatcher {
	return func(invs []inv.Invariant, vals []sample.Value, mod, count int) {
		x := conv(vals[0])
		for _, i := range invs {
			i.(inv.Unary[T]).Add(x, mod, count)
		}
	}
}

func binary[T any](conv func(sample.Value) T) dispatcher {
	return func(invs []inv.Invariant, vals []sample.Value, mod, count int) {
		x, y := conv(vals[0]), conv(vals[1])
		for _, i := range invs {
			i.(inv.Binary[T]).Add(x, y, mod, count)
		}
	}
}

// sequenceScalar puts the sequence first whatever the slice order.
func sequenceScalar[T any](seqOf func(sample.Value) []T, scalarOf func(sample.Value) T, seqFirst bool) dispatcher {
	return func(invs []inv.Invariant, vals []sample.Value, mod, count int) {
		sq, sc := vals[0], vals[1]
		if !seqFirst {
			sq, sc = sc, sq
		}
		seq, x := seqOf(sq), scalarOf(sc)
		for _, i := range invs {
			i.(inv.SequenceScalar[T]).Add(seq, x, mod, count)
		}
	}
}

func ternary[T any](conv func(sample.Value) T) dispatcher {
	return func(invs []inv.Invariant, vals []sample.Value, mod, count int) {
		x, y, z := conv(vals[0]), conv(vals[1]), conv(vals[2])
		for _, i := range invs {
			i.(inv.Ternary[T]).Add(x, y, z, mod, count)
		}
	}
}

var dispatchers = map[inv.Shape]dispatcher{
	inv.ShapeOf(vars.RepInt):       unary(asInt),
	inv.ShapeOf(vars.RepFloat):     unary(asFloat),
	inv.ShapeOf(vars.RepString):    unary(asString),
	inv.ShapeOf(vars.RepIntSeq):    unary(asIntSeq),
	inv.ShapeOf(vars.RepFloatSeq):  unary(asFloatSeq),
	inv.ShapeOf(vars.RepStringSeq): unary(asStringSeq),

	inv.ShapeOf(vars.RepInt, vars.RepInt):             binary(asInt),
	inv.ShapeOf(vars.RepFloat, vars.RepFloat):         binary(asFloat),
	inv.ShapeOf(vars.RepString, vars.RepString):       binary(asString),
	inv.ShapeOf(vars.RepIntSeq, vars.RepIntSeq):       binary(asIntSeq),
	inv.ShapeOf(vars.RepFloatSeq, vars.RepFloatSeq):   binary(asFloatSeq),
	inv.ShapeOf(vars.RepStringSeq, vars.RepStringSeq): binary(asStringSeq),

	inv.ShapeOf(vars.RepIntSeq, vars.RepInt):       sequenceScalar(asIntSeq, asInt, true),
	inv.ShapeOf(vars.RepInt, vars.RepIntSeq):       sequenceScalar(asIntSeq, asInt, false),
	inv.ShapeOf(vars.RepFloatSeq, vars.RepFloat):   sequenceScalar(asFloatSeq, asFloat, true),
	inv.ShapeOf(vars.RepFloat, vars.RepFloatSeq):   sequenceScalar(asFloatSeq, asFloat, false),
	inv.ShapeOf(vars.RepStringSeq, vars.RepString): sequenceScalar(asStringSeq, asString, true),
	inv.ShapeOf(vars.RepString, vars.RepStringSeq): sequenceScalar(asStringSeq, asString, false),

	inv.ShapeOf(vars.RepInt, vars.RepInt, vars.RepInt): ternary(asInt),
}
