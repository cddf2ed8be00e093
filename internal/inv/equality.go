package inv

import (
	"strings"

	"github.com/gnolang/tinfer/internal/sample"
	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

// Equality states that every variable of an equality class has the same
// value. It belongs to a point rather than a slice.
type Equality struct {
	base
	arena *vars.Arena
	ids   []vars.ID
	seen  int
}

// NewEquality creates the invariant for one class.
func NewEquality(cx *session.Session, arena *vars.Arena, ids []vars.ID) *Equality {
	return &Equality{
		base:  newBase(cx, nil),
		arena: arena,
		ids:   ids,
	}
}

func (e *Equality) Kind() Kind { return KindEquality }

func (e *Equality) VarIDs() []vars.ID { return e.ids }

// Check updates the invariant with one tuple. Tuples missing any class
// member are ignored, and so is every tuple when the class has fewer than
// two members.
func (e *Equality) Check(t sample.Tuple, count int) {
	if e.falsified || len(e.ids) < 2 {
		return
	}
	for _, id := range e.ids {
		if t.Mod(id) == sample.Missing {
			return
		}
	}
	first := t.Value(e.ids[0])
	for _, id := range e.ids[1:] {
		if !first.Equal(t.Value(id)) {
			e.falsify(ReasonCounterexample)
			return
		}
	}
	e.seen += count
}

func (e *Equality) Justification() Justification {
	switch {
	case e.falsified:
		return Never
	case e.seen == 0:
		return Unknown
	}
	return Justified
}

func (e *Equality) Format() string {
	return strings.Join(e.arena.Names(e.ids...), " == ")
}

func (e *Equality) IsSameFormula(other Invariant) bool {
	o, ok := other.(*Equality)
	return ok && len(o.ids) == len(e.ids)
}
