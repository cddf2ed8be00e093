package sample

import "github.com/gnolang/tinfer/internal/vars"

// Tuple carries one value and one modification tag per variable of a
// program point, indexed by variable ID.
type Tuple struct {
	Vals []Value
	Mods []ModTag
}

// NewTuple returns a tuple of n variables, all Missing.
func NewTuple(n int) Tuple {
	t := Tuple{Vals: make([]Value, n), Mods: make([]ModTag, n)}
	for i := range t.Mods {
		t.Mods[i] = Missing
	}
	return t
}

// Set stores v with the given tag. A nil v always produces Missing.
func (t Tuple) Set(id vars.ID, v Value, mod ModTag) {
	if v == nil {
		mod = Missing
	}
	t.Vals[id] = v
	t.Mods[id] = mod
}

func (t Tuple) Len() int { return len(t.Vals) }

func (t Tuple) Value(id vars.ID) Value { return t.Vals[id] }

func (t Tuple) Mod(id vars.ID) ModTag { return t.Mods[id] }
