package suppress

import (
	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/vars"
)

// containment is implemented by subsequence invariants.
type containment interface {
	Holds(sub, super vars.ID) bool
}

// SubsetImplied suppresses a property of every element of a sequence when
// the same property holds for a sequence known to contain it.
type SubsetImplied struct{}

func (SubsetImplied) Name() string { return "subset-implied" }

func (SubsetImplied) Kinds() []inv.Kind {
	return []inv.Kind{inv.KindEltwiseOrder, inv.KindEltNonZero}
}

// Generate tries, in order: the sequence this variable was derived from,
// sequences that contain it by construction, and sequences shown to
// contain it by a live subsequence invariant.
func (SubsetImplied) Generate(h Host, i inv.Invariant) *Link {
	ids := i.VarIDs()
	if len(ids) != 1 {
		return nil
	}
	a := h.Arena()
	this := a.Get(ids[0])
	if this == nil {
		return nil
	}

	if orig := this.SubsequenceOf(); orig != vars.NoID {
		if w := witness(h, i, orig); w != nil {
			return newLink(i, this.ID, orig, w)
		}
	}

	for _, other := range a.All() {
		if other.ID == this.ID || other.Rep != this.Rep || !obviousSubset(this, other) {
			continue
		}
		if w := witness(h, i, other.ID); w != nil {
			return newLink(i, this.ID, other.ID, w)
		}
	}

	for _, other := range a.All() {
		if other.ID == this.ID || other.Rep != this.Rep {
			continue
		}
		w := witness(h, i, other.ID)
		if w == nil {
			continue
		}
		if sub := findContainment(h, this.ID, other.ID); sub != nil {
			return newLink(i, this.ID, other.ID, w, sub)
		}
	}
	return nil
}

// Valid holds while the witness keeps the formula of the suppressed
// invariant and, for observed containment, the subsequence invariant still
// shows the containment.
func (SubsetImplied) Valid(l *Link) bool {
	if len(l.Suppressors) == 0 {
		return false
	}
	w := l.Suppressors[0]
	if w.Falsified() || !w.IsSameFormula(l.Suppressed) {
		return false
	}
	if len(l.Suppressors) == 1 {
		return true
	}
	c, ok := l.Suppressors[1].(containment)
	if !ok || l.Suppressors[1].Falsified() {
		return false
	}
	for from, to := range l.Transform {
		if !c.Holds(from, to) {
			return false
		}
	}
	return true
}

func newLink(i inv.Invariant, from, to vars.ID, suppressors ...inv.Invariant) *Link {
	return &Link{
		Suppressed:  i,
		Suppressors: suppressors,
		Transform:   map[vars.ID]vars.ID{from: to},
	}
}

// witness returns f(id) when it can stand in for i.
func witness(h Host, i inv.Invariant, id vars.ID) inv.Invariant {
	w := h.FindInvariant(i.Kind(), id)
	if w == nil || w.ID() == i.ID() || w.Falsified() || w.Suppressed() {
		return nil
	}
	if !w.IsSameFormula(i) {
		return nil
	}
	return w
}

// obviousSubset reports whether this is a subsequence of other by
// construction: both cut from the same base at the same bound variable in
// the same direction, with this cut no wider than other.
func obviousSubset(this, other *vars.Info) bool {
	if this.SubsequenceOf() == vars.NoID || this.SubsequenceOf() != other.SubsequenceOf() {
		return false
	}
	l, r := this.Derived, other.Derived
	if l.FromStart != r.FromStart || l.Index != r.Index {
		return false
	}
	if l.FromStart {
		return r.Shift-l.Shift >= 0
	}
	return r.Shift-l.Shift <= 0
}

// findContainment returns a live subsequence invariant showing sub is
// contained in super, looking at both slice orders.
func findContainment(h Host, sub, super vars.ID) inv.Invariant {
	for _, ids := range [][2]vars.ID{{sub, super}, {super, sub}} {
		c := h.FindInvariant(inv.KindSubSequence, ids[0], ids[1])
		if c == nil || c.Falsified() {
			continue
		}
		if s, ok := c.(containment); ok && s.Holds(sub, super) {
			return c
		}
	}
	return nil
}
