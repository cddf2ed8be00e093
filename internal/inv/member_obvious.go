package inv

import (
	"strings"

	"github.com/gnolang/tinfer/internal/vars"
)

// IsEqualToObviousMember reports whether scl in seq is obvious for scl and
// seq or for any pair of variables known to equal them.
func IsEqualToObviousMember(a *vars.Arena, c *vars.Classes, scl, seq vars.ID) bool {
	for _, s := range c.Members(scl) {
		for _, q := range c.Members(seq) {
			if IsObviousMember(a, s, q) {
				return true
			}
		}
	}
	return false
}

// IsObviousMember reports whether scalar scl is an element of sequence seq
// by construction. Examples:
//
//	B[I] in B
//	max(B[0..I]) in B
//	B[I] in B[0..I]
//	B[I-1] in B[0..I]
//	B[0] in B[0..I]
//	header.next in header.~ll~next~
func IsObviousMember(a *vars.Arena, scl, seq vars.ID) bool {
	sv, qv := a.Get(scl), a.Get(seq)
	if sv == nil || qv == nil {
		return false
	}
	return obviousByDerivation(a, sv, qv) || obviousByName(sv.Name, qv.Name)
}

func obviousByDerivation(a *vars.Arena, sv, qv *vars.Info) bool {
	owner := sv.SequenceMemberOf()
	if owner == vars.NoID {
		return false
	}
	if owner == qv.ID {
		return true
	}
	// sv is an element of a subsequence of qv.
	if ov := a.Get(owner); ov != nil && ov.SubsequenceOf() == qv.ID {
		return true
	}
	// Otherwise qv must be a subsequence of the sequence holding sv and
	// sv's position must fall inside it.
	if qv.SubsequenceOf() != owner {
		return false
	}
	elem, sub := sv.Derived, qv.Derived
	switch elem.Kind {
	case vars.Subscript:
		if elem.Index != sub.Index {
			return false
		}
		if sub.FromStart {
			return elem.Shift <= sub.Shift
		}
		return elem.Shift >= sub.Shift
	case vars.Initial:
		if sub.FromStart {
			return elem.Offset == 0
		}
		return elem.Offset == -1
	}
	return false
}

// obviousByName recognises linked-list flattenings, where the sequence
// name contains a ~ll~field~ segment naming the field followed from the
// scalar's prefix.
func obviousByName(scl, seq string) bool {
	llpos := strings.Index(seq, "~ll~")
	if llpos == -1 || llpos+5 > len(seq) {
		return false
	}
	rel := strings.Index(seq[llpos+5:], "~")
	if rel == -1 {
		return false
	}
	tildepos := llpos + 5 + rel
	midsize := tildepos - llpos - 4
	lastsize := len(seq) - tildepos - 1

	if !regionMatches(seq, 0, scl, 0, llpos) {
		return false
	}
	if tildepos == len(seq)-1 && llpos == len(scl) {
		return true
	}
	return regionMatches(seq, llpos+4, scl, llpos, midsize) &&
		regionMatches(seq, tildepos+1, scl, tildepos-4, lastsize)
}

func regionMatches(a string, aoff int, b string, boff, n int) bool {
	if aoff < 0 || boff < 0 || aoff+n > len(a) || boff+n > len(b) {
		return false
	}
	if n <= 0 {
		return true
	}
	return a[aoff:aoff+n] == b[boff:boff+n]
}
