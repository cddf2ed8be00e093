package sample

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gnolang/tinfer/internal/vars"
)

// Value is one observed value of a variable.
type Value interface {
	isValue()
	String() string
	Equal(other Value) bool
}

// IntValue is an integer scalar.
type IntValue struct {
	Val int64
}

func (IntValue) isValue() {}
func (v IntValue) String() string {
	return strconv.FormatInt(v.Val, 10)
}

func (v IntValue) Equal(other Value) bool {
	if o, ok := other.(IntValue); ok {
		return v.Val == o.Val
	}
	return false
}

// FloatValue is a floating point scalar.
type FloatValue struct {
	Val float64
}

func (FloatValue) isValue() {}
func (v FloatValue) String() string {
	return strconv.FormatFloat(v.Val, 'g', -1, 64)
}

func (v FloatValue) Equal(other Value) bool {
	if o, ok := other.(FloatValue); ok {
		return v.Val == o.Val
	}
	return false
}

// StringValue is a string scalar.
type StringValue struct {
	Val string
}

func (StringValue) isValue() {}
func (v StringValue) String() string {
	return strconv.Quote(v.Val)
}

func (v StringValue) Equal(other Value) bool {
	if o, ok := other.(StringValue); ok {
		return v.Val == o.Val
	}
	return false
}

// IntSeq is a sequence of integers.
type IntSeq struct {
	Vals []int64
}

func (IntSeq) isValue() {}
func (v IntSeq) String() string {
	return formatSeq(v.Vals, func(x int64) string { return strconv.FormatInt(x, 10) })
}

func (v IntSeq) Equal(other Value) bool {
	if o, ok := other.(IntSeq); ok {
		return slices.Equal(v.Vals, o.Vals)
	}
	return false
}

// FloatSeq is a sequence of floating point numbers.
type FloatSeq struct {
	Vals []float64
}

func (FloatSeq) isValue() {}
func (v FloatSeq) String() string {
	return formatSeq(v.Vals, func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) })
}

func (v FloatSeq) Equal(other Value) bool {
	if o, ok := other.(FloatSeq); ok {
		return slices.Equal(v.Vals, o.Vals)
	}
	return false
}

// StringSeq is a sequence of strings.
type StringSeq struct {
	Vals []string
}

func (StringSeq) isValue() {}
func (v StringSeq) String() string {
	return formatSeq(v.Vals, strconv.Quote)
}

func (v StringSeq) Equal(other Value) bool {
	if o, ok := other.(StringSeq); ok {
		return slices.Equal(v.Vals, o.Vals)
	}
	return false
}

func formatSeq[T any](vals []T, f func(T) string) string {
	parts := make([]string, len(vals))
	for i, x := range vals {
		parts[i] = f(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Conforms reports whether v is a value of representation rep.
func Conforms(v Value, rep vars.RepType) bool {
	switch v.(type) {
	case IntValue:
		return rep == vars.RepInt
	case FloatValue:
		return rep == vars.RepFloat
	case StringValue:
		return rep == vars.RepString
	case IntSeq:
		return rep == vars.RepIntSeq
	case FloatSeq:
		return rep == vars.RepFloatSeq
	case StringSeq:
		return rep == vars.RepStringSeq
	}
	return false
}

// ModTag records whether a value changed since the previous observation
// of the same point.
type ModTag int

const (
	Unmodified ModTag = iota
	Modified
	Missing
	StaticConstant
)

func (m ModTag) String() string {
	switch m {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Missing:
		return "missing"
	case StaticConstant:
		return "static"
	default:
		return fmt.Sprintf("ModTag(%d)", int(m))
	}
}

// ParseModTag is the inverse of ModTag.String.
func ParseModTag(s string) (ModTag, error) {
	for m := Unmodified; m <= StaticConstant; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown modification tag %q", s)
}
