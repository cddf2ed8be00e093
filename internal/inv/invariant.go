package inv

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gnolang/tinfer/internal/vars"
)

// SliceView is the read-only part of a slice an invariant may consult.
type SliceView interface {
	VarIDs() []vars.ID
	Var(i int) *vars.Info
	Arity() int
	NumSamples() int
	NumModifiedSamples() int
	Arena() *vars.Arena
	Classes() *vars.Classes
}

// Invariant is a candidate property of a slice's variables.
type Invariant interface {
	ID() int
	Kind() Kind
	// Slice returns the owning slice. Equality invariants belong to a
	// point and return nil.
	Slice() SliceView
	VarIDs() []vars.ID
	Falsified() bool
	Reason() Reason
	Suppressed() bool
	SetSuppressed(bool)
	Justification() Justification
	Format() string
	// IsSameFormula reports whether other states the same relation over
	// its own variables, ignoring statistics.
	IsSameFormula(other Invariant) bool
}

// Unary invariants hold over one variable.
type Unary[T any] interface {
	Invariant
	Add(v T, mod, count int)
}

// Binary invariants hold over two variables of the same type.
type Binary[T any] interface {
	Invariant
	Add(x, y T, mod, count int)
}

// SequenceScalar invariants relate a sequence and a scalar. The sequence
// always comes first, whatever the slice order.
type SequenceScalar[T any] interface {
	Invariant
	Add(seq []T, x T, mod, count int)
}

// Ternary invariants hold over three variables of the same type.
type Ternary[T any] interface {
	Invariant
	Add(x, y, z T, mod, count int)
}

// Kind identifies an invariant variant.
type Kind int

const (
	KindOneOf Kind = iota + 1
	KindNonZero
	KindEltwiseOrder
	KindEltNonZero
	KindComparison
	KindLinearBinary
	KindMember
	KindSeqComparison
	KindSubSequence
	KindLinearTernary
	KindEquality
	KindLowerBound
	KindUpperBound
	KindModulus
	KindNonModulus
)

var kindNames = map[Kind]string{
	KindOneOf:         "one-of",
	KindNonZero:       "non-zero",
	KindEltwiseOrder:  "eltwise-order",
	KindEltNonZero:    "elt-non-zero",
	KindComparison:    "comparison",
	KindLinearBinary:  "linear-binary",
	KindMember:        "member",
	KindSeqComparison: "seq-comparison",
	KindSubSequence:   "subsequence",
	KindLinearTernary: "linear-ternary",
	KindEquality:      "equality",
	KindLowerBound:    "lower-bound",
	KindUpperBound:    "upper-bound",
	KindModulus:       "modulus",
	KindNonModulus:    "non-modulus",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Reason explains why an invariant was falsified.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCounterexample
	ReasonDegenerate
	ReasonNoOrder
	ReasonTooManyValues
	ReasonNotMember
	ReasonNotSubsequence
	ReasonNonIntegral
	ReasonNoModulus
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonCounterexample:
		return "counterexample"
	case ReasonDegenerate:
		return "degenerate"
	case ReasonNoOrder:
		return "no consistent order"
	case ReasonTooManyValues:
		return "too many values"
	case ReasonNotMember:
		return "not a member"
	case ReasonNotSubsequence:
		return "not a subsequence"
	case ReasonNonIntegral:
		return "non-integral coefficients"
	case ReasonNoModulus:
		return "no common modulus"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Justification is the confidence that an invariant is not a coincidence.
// Known values lie in [0, 1]. Unknown means there is not yet enough
// evidence to say.
type Justification float64

const (
	Never     Justification = 0
	Justified Justification = 1
	Unknown   Justification = -1
)

func (j Justification) Known() bool { return j >= 0 }

func (j Justification) String() string {
	if !j.Known() {
		return "unknown"
	}
	return strconv.FormatFloat(float64(j), 'f', 4, 64)
}

// fromChance turns the probability that the observations happened by
// chance into a justification.
func fromChance(p float64) Justification {
	switch {
	case p <= 0:
		return Justified
	case p >= 1:
		return Never
	}
	return Justification(1 - p)
}

// halfChance is the justification of an order relation seen over n
// samples, each of which had an even chance of going the other way.
func halfChance(n int) Justification {
	if n <= 0 {
		return Unknown
	}
	return fromChance(math.Pow(0.5, float64(n)))
}
