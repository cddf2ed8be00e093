package vars

import "fmt"

// RepType is the runtime representation of a variable's values.
type RepType int

const (
	RepInt RepType = iota + 1
	RepFloat
	RepString
	RepIntSeq
	RepFloatSeq
	RepStringSeq
)

var repNames = map[RepType]string{
	RepInt:       "int",
	RepFloat:     "double",
	RepString:    "string",
	RepIntSeq:    "int[]",
	RepFloatSeq:  "double[]",
	RepStringSeq: "string[]",
}

func (r RepType) String() string {
	if s, ok := repNames[r]; ok {
		return s
	}
	return fmt.Sprintf("RepType(%d)", int(r))
}

// IsSequence reports whether values of r are sequences.
func (r RepType) IsSequence() bool {
	return r == RepIntSeq || r == RepFloatSeq || r == RepStringSeq
}

// IsFloat reports whether r is, or has elements of, floating point type.
func (r RepType) IsFloat() bool {
	return r == RepFloat || r == RepFloatSeq
}

// Elem returns the element representation of a sequence type, and r
// itself for scalars.
func (r RepType) Elem() RepType {
	switch r {
	case RepIntSeq:
		return RepInt
	case RepFloatSeq:
		return RepFloat
	case RepStringSeq:
		return RepString
	}
	return r
}

// ParseRepType accepts the names produced by RepType.String, plus "float"
// as an alias of "double".
func ParseRepType(s string) (RepType, error) {
	switch s {
	case "float":
		return RepFloat, nil
	case "float[]":
		return RepFloatSeq, nil
	}
	for r, name := range repNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRep, s)
}
