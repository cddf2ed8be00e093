package vars

import "fmt"

// ID addresses a variable in its arena and in sample tuples.
type ID int

// NoID marks an absent variable reference.
const NoID ID = -1

// DerivationKind tells how a derived variable was computed.
type DerivationKind int

const (
	// Subsequence is Base[0..Index+Shift] when FromStart is set and
	// Base[Index+Shift..] otherwise. Both bounds are inclusive.
	Subsequence DerivationKind = iota + 1
	// Subscript is Base[Index+Shift].
	Subscript
	// Initial is Base[Offset]; a negative offset counts from the end.
	Initial
	// SequenceMin is min(Base).
	SequenceMin
	// SequenceMax is max(Base).
	SequenceMax
)

var derivationNames = map[DerivationKind]string{
	Subsequence: "subsequence",
	Subscript:   "subscript",
	Initial:     "initial",
	SequenceMin: "min",
	SequenceMax: "max",
}

func (k DerivationKind) String() string {
	if s, ok := derivationNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DerivationKind(%d)", int(k))
}

// ParseDerivationKind is the inverse of DerivationKind.String.
func ParseDerivationKind(s string) (DerivationKind, bool) {
	for k, name := range derivationNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Derivation links a derived variable to the variables it was computed from.
type Derivation struct {
	Kind      DerivationKind
	Base      ID
	Index     ID
	Shift     int
	FromStart bool
	Offset    int
}

// Info describes one variable.
type Info struct {
	ID      ID
	Name    string
	Rep     RepType
	Derived *Derivation
}

// IsDerived reports whether v was computed from other variables.
func (v *Info) IsDerived() bool { return v.Derived != nil }

// SubsequenceOf returns the sequence v is a subsequence of, or NoID.
func (v *Info) SubsequenceOf() ID {
	if v.Derived != nil && v.Derived.Kind == Subsequence {
		return v.Derived.Base
	}
	return NoID
}

// SequenceMemberOf returns the sequence v is an element of, or NoID. Every
// element-valued derivation (subscript, initial, min, max) qualifies.
func (v *Info) SequenceMemberOf() ID {
	if v.Derived == nil {
		return NoID
	}
	switch v.Derived.Kind {
	case Subscript, Initial, SequenceMin, SequenceMax:
		return v.Derived.Base
	}
	return NoID
}

func (v *Info) String() string { return v.Name }

// Arena stores the variables of one program point in declaration order.
type Arena struct {
	vars   []*Info
	byName map[string]ID
}

func NewArena() *Arena {
	return &Arena{byName: make(map[string]ID)}
}

// Add declares a plain variable and returns its ID.
func (a *Arena) Add(name string, rep RepType) (ID, error) {
	return a.add(name, rep, nil)
}

// AddDerived declares a variable computed from earlier variables.
func (a *Arena) AddDerived(name string, rep RepType, d Derivation) (ID, error) {
	if err := a.checkDerivation(rep, d); err != nil {
		return NoID, fmt.Errorf("deriving %s: %w", name, err)
	}
	return a.add(name, rep, &d)
}

func (a *Arena) add(name string, rep RepType, d *Derivation) (ID, error) {
	if _, ok := repNames[rep]; !ok {
		return NoID, fmt.Errorf("%s: %w", name, ErrUnknownRep)
	}
	if _, ok := a.byName[name]; ok {
		return NoID, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	id := ID(len(a.vars))
	a.vars = append(a.vars, &Info{ID: id, Name: name, Rep: rep, Derived: d})
	a.byName[name] = id
	return id, nil
}

func (a *Arena) checkDerivation(rep RepType, d Derivation) error {
	base := a.Get(d.Base)
	if base == nil {
		return fmt.Errorf("%w: base %d", ErrUnknownVariable, d.Base)
	}
	if !base.Rep.IsSequence() {
		return fmt.Errorf("%w: %s", ErrNotSequence, base.Name)
	}
	switch d.Kind {
	case Subsequence, Subscript:
		idx := a.Get(d.Index)
		if idx == nil {
			return fmt.Errorf("%w: index %d", ErrUnknownVariable, d.Index)
		}
		if idx.Rep != RepInt {
			return fmt.Errorf("%w: %s", ErrNotScalar, idx.Name)
		}
	case Initial, SequenceMin, SequenceMax:
	default:
		return fmt.Errorf("unknown derivation kind %d", int(d.Kind))
	}
	want := base.Rep.Elem()
	if d.Kind == Subsequence {
		want = base.Rep
	}
	if rep != want {
		return fmt.Errorf("%s derivation of %s must be %s, got %s", d.Kind, base.Name, want, rep)
	}
	return nil
}

// Get returns the variable with the given ID, or nil.
func (a *Arena) Get(id ID) *Info {
	if id < 0 || int(id) >= len(a.vars) {
		return nil
	}
	return a.vars[id]
}

// Lookup finds a variable by name.
func (a *Arena) Lookup(name string) (ID, bool) {
	id, ok := a.byName[name]
	return id, ok
}

func (a *Arena) Len() int { return len(a.vars) }

// All returns the variables in declaration order. The slice must not be
// modified.
func (a *Arena) All() []*Info { return a.vars }

// Names maps ids to names, for logging.
func (a *Arena) Names(ids ...ID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if v := a.Get(id); v != nil {
			names[i] = v.Name
		} else {
			names[i] = fmt.Sprintf("#%d", id)
		}
	}
	return names
}
