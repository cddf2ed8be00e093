package inv

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

// Shape is the arity and representation types of a slice, in slice order.
type Shape struct {
	Arity int
	Reps  [3]vars.RepType
}

func ShapeOf(reps ...vars.RepType) Shape {
	var s Shape
	s.Arity = len(reps)
	copy(s.Reps[:], reps)
	return s
}

// ShapeOfSlice reads the shape of s.
func ShapeOfSlice(s SliceView) Shape {
	reps := make([]vars.RepType, s.Arity())
	for i := range reps {
		reps[i] = s.Var(i).Rep
	}
	return ShapeOf(reps...)
}

func (s Shape) hasFloat() bool {
	for _, r := range s.Reps[:s.Arity] {
		if r.IsFloat() {
			return true
		}
	}
	return false
}

func (s Shape) String() string {
	parts := make([]string, s.Arity)
	for i := range parts {
		parts[i] = s.Reps[i].String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type constructor func(cx *session.Session, s SliceView) []Invariant

type factoryMap map[Shape]constructor

// allFactories maps each supported shape to the constructor of its
// candidate set.
var allFactories = factoryMap{
	ShapeOf(vars.RepInt):       unaryInt,
	ShapeOf(vars.RepFloat):     unaryScalar[float64](formatFloat),
	ShapeOf(vars.RepString):    unaryScalar[string](strconv.Quote),
	ShapeOf(vars.RepIntSeq):    unaryIntSeq,
	ShapeOf(vars.RepFloatSeq):  unarySeq[float64],
	ShapeOf(vars.RepStringSeq): unarySeq[string],

	ShapeOf(vars.RepInt, vars.RepInt):       binaryInt,
	ShapeOf(vars.RepFloat, vars.RepFloat):   binaryScalar[float64],
	ShapeOf(vars.RepString, vars.RepString): binaryScalar[string],

	ShapeOf(vars.RepIntSeq, vars.RepInt):       member[int64](true),
	ShapeOf(vars.RepInt, vars.RepIntSeq):       member[int64](false),
	ShapeOf(vars.RepFloatSeq, vars.RepFloat):   member[float64](true),
	ShapeOf(vars.RepFloat, vars.RepFloatSeq):   member[float64](false),
	ShapeOf(vars.RepStringSeq, vars.RepString): member[string](true),
	ShapeOf(vars.RepString, vars.RepStringSeq): member[string](false),

	ShapeOf(vars.RepIntSeq, vars.RepIntSeq):       binarySeq[int64],
	ShapeOf(vars.RepFloatSeq, vars.RepFloatSeq):   binarySeq[float64],
	ShapeOf(vars.RepStringSeq, vars.RepStringSeq): binarySeq[string],

	ShapeOf(vars.RepInt, vars.RepInt, vars.RepInt): ternaryInt,
}

// Supported reports whether any family exists for shape.
func Supported(shape Shape) bool {
	_, ok := allFactories[shape]
	return ok
}

// Instantiate creates the candidate invariants for s. Unsupported or
// disabled shapes yield nil.
func Instantiate(cx *session.Session, s SliceView) []Invariant {
	shape := ShapeOfSlice(s)
	if shape.hasFloat() && !cx.Config.EnableFloats {
		return nil
	}
	if shape.Arity == 3 && !cx.Config.EnableTernary {
		return nil
	}
	build, ok := allFactories[shape]
	if !ok {
		return nil
	}

	invs := build(cx, s)
	cx.Metrics.Instantiated.Add(float64(len(invs)))
	if ce := cx.Logger().Check(zap.DebugLevel, "instantiated"); ce != nil {
		ce.Write(
			zap.Strings("vars", s.Arena().Names(s.VarIDs()...)),
			zap.Stringer("shape", shape),
			zap.Int("count", len(invs)),
		)
	}
	return invs
}

func formatInt(v int64) string     { return strconv.FormatInt(v, 10) }
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func unaryInt(cx *session.Session, s SliceView) []Invariant {
	return []Invariant{
		newOneOf(newBase(cx, s), cx.Config.MaxOneOf, formatInt),
		newNonZero(newBase(cx, s)),
		newLowerBound(newBase(cx, s)),
		newUpperBound(newBase(cx, s)),
		newModulus(newBase(cx, s)),
		newNonModulus(newBase(cx, s)),
	}
}

func unaryScalar[T float64 | string](format func(T) string) constructor {
	return func(cx *session.Session, s SliceView) []Invariant {
		return []Invariant{newOneOf(newBase(cx, s), cx.Config.MaxOneOf, format)}
	}
}

func unaryIntSeq(cx *session.Session, s SliceView) []Invariant {
	return []Invariant{
		newEltwiseOrder[int64](newBase(cx, s)),
		newEltNonZero(newBase(cx, s)),
	}
}

func unarySeq[T float64 | string](cx *session.Session, s SliceView) []Invariant {
	return []Invariant{newEltwiseOrder[T](newBase(cx, s))}
}

func binaryInt(cx *session.Session, s SliceView) []Invariant {
	return []Invariant{
		newComparison[int64](newBase(cx, s)),
		newLinearBinary(newBase(cx, s)),
	}
}

func binaryScalar[T float64 | string](cx *session.Session, s SliceView) []Invariant {
	return []Invariant{newComparison[T](newBase(cx, s))}
}

func binarySeq[T int64 | float64 | string](cx *session.Session, s SliceView) []Invariant {
	return []Invariant{
		newSeqComparison[T](newBase(cx, s)),
		newSubSequence[T](newBase(cx, s)),
	}
}

// member skips the candidate when membership follows from how the
// variables were derived.
func member[T int64 | float64 | string](seqFirst bool) constructor {
	return func(cx *session.Session, s SliceView) []Invariant {
		ids := s.VarIDs()
		scl, seq := ids[0], ids[1]
		if seqFirst {
			scl, seq = seq, scl
		}
		if IsEqualToObviousMember(s.Arena(), s.Classes(), scl, seq) {
			cx.Metrics.ObviousSkipped.Inc()
			return nil
		}
		return []Invariant{newMember[T](newBase(cx, s), seqFirst)}
	}
}

func ternaryInt(cx *session.Session, s SliceView) []Invariant {
	return []Invariant{newLinearTernary(newBase(cx, s))}
}
