package filter

import (
	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/vars"
)

type ordered interface {
	Relation() string
}

type obviousEquality struct{}

func (obviousEquality) Name() string { return "obvious-equality" }

// Discard drops classes of a single variable.
func (obviousEquality) Discard(_ Env, i inv.Invariant) bool {
	return i.Kind() == inv.KindEquality && len(i.VarIDs()) < 2
}

type obviousSeqComparison struct{}

func (obviousSeqComparison) Name() string { return "obvious-subsequence-comparison" }

// Discard drops comparisons between two cuts of the same sequence.
func (obviousSeqComparison) Discard(env Env, i inv.Invariant) bool {
	if i.Kind() != inv.KindSeqComparison {
		return false
	}
	ids := i.VarIDs()
	x, y := env.Arena.Get(ids[0]), env.Arena.Get(ids[1])
	return x.SubsequenceOf() != vars.NoID && x.SubsequenceOf() == y.SubsequenceOf()
}

type obviousMember struct{}

func (obviousMember) Name() string { return "obvious-member" }

func (obviousMember) Discard(env Env, i inv.Invariant) bool {
	if i.Kind() != inv.KindMember {
		return false
	}
	m, ok := i.(interface{ Vars() (scalar, seq int) })
	if !ok {
		return false
	}
	scl, seq := m.Vars()
	ids := i.VarIDs()
	return inv.IsEqualToObviousMember(env.Arena, env.Classes, ids[scl], ids[seq])
}

type obviousSubsequence struct{}

func (obviousSubsequence) Name() string { return "obvious-subsequence" }

// Discard drops containments that only restate a derivation.
func (obviousSubsequence) Discard(env Env, i inv.Invariant) bool {
	if i.Kind() != inv.KindSubSequence {
		return false
	}
	d, ok := i.(interface{ Directions() (bool, bool) })
	if !ok {
		return false
	}
	xInY, yInX := d.Directions()
	if !xInY && !yInX {
		return false
	}
	ids := i.VarIDs()
	x, y := env.Arena.Get(ids[0]), env.Arena.Get(ids[1])
	if xInY && x.SubsequenceOf() != y.ID {
		return false
	}
	if yInX && y.SubsequenceOf() != x.ID {
		return false
	}
	return true
}

type obviousComparison struct{}

func (obviousComparison) Name() string { return "obvious-comparison" }

// Discard drops comparisons between the minimum, maximum and elements of
// one sequence that agree with how those variables were derived.
func (obviousComparison) Discard(env Env, i inv.Invariant) bool {
	if i.Kind() != inv.KindComparison {
		return false
	}
	o, ok := i.(ordered)
	if !ok {
		return false
	}
	ids := i.VarIDs()
	implied := impliedRelation(env.Arena.Get(ids[0]), env.Arena.Get(ids[1]))
	return implied != "" && o.Relation() == implied
}

type role int

const (
	roleNone role = iota
	roleMin
	roleMax
	roleElem
)

func roleOf(v *vars.Info) (role, vars.ID) {
	if v.Derived == nil {
		return roleNone, vars.NoID
	}
	switch v.Derived.Kind {
	case vars.SequenceMin:
		return roleMin, v.Derived.Base
	case vars.SequenceMax:
		return roleMax, v.Derived.Base
	case vars.Subscript, vars.Initial:
		return roleElem, v.Derived.Base
	}
	return roleNone, vars.NoID
}

// impliedRelation returns the operator that holds between x and y by
// construction, or "".
func impliedRelation(x, y *vars.Info) string {
	rx, bx := roleOf(x)
	ry, by := roleOf(y)
	if rx == roleNone || ry == roleNone || bx != by {
		return ""
	}
	switch {
	case rx == roleMin && (ry == roleMax || ry == roleElem):
		return "<="
	case rx == roleMax && (ry == roleMin || ry == roleElem):
		return ">="
	case rx == roleElem && ry == roleMin:
		return ">="
	case rx == roleElem && ry == roleMax:
		return "<="
	}
	return ""
}
