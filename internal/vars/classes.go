package vars

import (
	"fmt"
	"slices"
)

// Classes is a read-only partition of variables into groups observed to be
// equal. Variables not named in any group form singleton classes. A nil
// *Classes treats every variable as a singleton.
type Classes struct {
	groups [][]ID
	owner  map[ID]int
}

// NewClasses builds the partition. Group members are kept sorted by ID and
// the first member is the class leader.
func NewClasses(groups ...[]ID) (*Classes, error) {
	c := &Classes{owner: make(map[ID]int)}
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		members := slices.Clone(g)
		slices.Sort(members)
		members = slices.Compact(members)
		idx := len(c.groups)
		for _, id := range members {
			if _, dup := c.owner[id]; dup {
				return nil, fmt.Errorf("%w: %d", ErrOverlappingClass, id)
			}
			c.owner[id] = idx
		}
		c.groups = append(c.groups, members)
	}
	return c, nil
}

// Members returns the class of id, which always contains id itself.
func (c *Classes) Members(id ID) []ID {
	if c == nil {
		return []ID{id}
	}
	idx, ok := c.owner[id]
	if !ok {
		return []ID{id}
	}
	return c.groups[idx]
}

// Leader returns the smallest ID in id's class.
func (c *Classes) Leader(id ID) ID {
	return c.Members(id)[0]
}

// Same reports whether a and b are in the same class.
func (c *Classes) Same(a, b ID) bool {
	return a == b || c.Leader(a) == c.Leader(b)
}

// Groups returns the explicitly declared classes.
func (c *Classes) Groups() [][]ID {
	if c == nil {
		return nil
	}
	return c.groups
}
