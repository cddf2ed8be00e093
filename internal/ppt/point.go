package ppt

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gnolang/tinfer/internal/filter"
	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/sample"
	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/suppress"
	"github.com/gnolang/tinfer/internal/vars"
)

// Point is a program point: a set of variables observed together.
type Point struct {
	Name string

	cx      *session.Session
	logger  *zap.Logger
	arena   *vars.Arena
	classes *vars.Classes

	slices     []*Slice
	byKey      map[string]*Slice
	equalities []*inv.Equality
	engine     *suppress.Engine
	filters    *filter.Manager
	samples    int
}

// NewPoint creates a point over the variables of arena. Each equality
// class with more than one member gets an Equality invariant.
func NewPoint(cx *session.Session, name string, arena *vars.Arena, classes *vars.Classes) *Point {
	p := &Point{
		Name:    name,
		cx:      cx,
		logger:  cx.Logger().With(zap.String("ppt", name)),
		arena:   arena,
		classes: classes,
		byKey:   make(map[string]*Slice),
		filters: filter.NewManager(arena, classes, cx.Config),
	}
	p.engine = suppress.NewEngine(cx, p)
	for _, g := range classes.Groups() {
		if len(g) > 1 {
			p.equalities = append(p.equalities, inv.NewEquality(cx, arena, g))
		}
	}
	return p
}

// AddSlice creates and instantiates the slice over ids. The slice is kept
// even when it has no candidates.
func (p *Point) AddSlice(ids ...vars.ID) (*Slice, error) {
	s, err := p.newSlice(ids)
	if err != nil {
		return nil, err
	}
	p.register(s)
	return s, nil
}

func (p *Point) newSlice(ids []vars.ID) (*Slice, error) {
	if _, dup := p.byKey[sliceKey(ids)]; dup {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateSlice, p.arena.Names(ids...))
	}
	s, err := NewSlice(p.cx, p.arena, p.classes, ids...)
	if err != nil {
		return nil, err
	}
	if err := s.Instantiate(); err != nil {
		return nil, err
	}
	s.onFalsified = p.falsified
	s.onSampled = p.recheck
	return s, nil
}

func (p *Point) register(s *Slice) {
	p.slices = append(p.slices, s)
	p.byKey[s.key] = s
}

// CreateSlices builds every unary, binary and, when enabled, ternary
// slice over the equality class leaders, in ascending ID order. Slices
// without candidates are dropped.
func (p *Point) CreateSlices() error {
	var leaders []vars.ID
	for _, v := range p.arena.All() {
		if p.classes.Leader(v.ID) == v.ID {
			leaders = append(leaders, v.ID)
		}
	}

	var tuples [][]vars.ID
	for i, a := range leaders {
		tuples = append(tuples, []vars.ID{a})
		for j := i + 1; j < len(leaders); j++ {
			tuples = append(tuples, []vars.ID{a, leaders[j]})
			if !p.cx.Config.EnableTernary {
				continue
			}
			for k := j + 1; k < len(leaders); k++ {
				tuples = append(tuples, []vars.ID{a, leaders[j], leaders[k]})
			}
		}
	}

	for _, ids := range tuples {
		if _, dup := p.byKey[sliceKey(ids)]; dup {
			continue
		}
		s, err := p.newSlice(ids)
		if err != nil {
			return err
		}
		if !s.Empty() {
			p.register(s)
		}
	}
	p.logger.Debug("slices created", zap.Int("slices", len(p.slices)))
	return nil
}

// Add feeds one sample to every slice with live candidates and to the
// equality invariants. It returns every invariant whose state changed.
func (p *Point) Add(t sample.Tuple, count int) []inv.Invariant {
	if t.Len() != p.arena.Len() {
		panic(fmt.Sprintf("ppt: %s: tuple of %d values for %d variables", p.Name, t.Len(), p.arena.Len()))
	}
	if count < 1 {
		panic(fmt.Sprintf("ppt: %s: sample count %d", p.Name, count))
	}
	p.samples += count

	var changed []inv.Invariant
	for _, s := range p.slices {
		if s.Empty() {
			continue
		}
		changed = append(changed, s.Add(t, count)...)
	}
	for _, e := range p.equalities {
		if e.Falsified() {
			continue
		}
		e.Check(t, count)
		if e.Falsified() {
			changed = append(changed, e)
		}
	}
	return changed
}

func (p *Point) falsified(invs []inv.Invariant) []inv.Invariant {
	var changed []inv.Invariant
	for _, i := range invs {
		changed = append(changed, p.engine.Falsified(i)...)
	}
	return changed
}

func (p *Point) recheck(invs []inv.Invariant) []inv.Invariant {
	var changed []inv.Invariant
	for _, i := range invs {
		changed = append(changed, p.engine.Recheck(i)...)
	}
	return changed
}

// Suppress runs the suppression engine over every live, unsuppressed
// invariant and returns the ones that became suppressed.
func (p *Point) Suppress() []inv.Invariant {
	if !p.cx.Config.Suppression {
		return nil
	}
	var suppressed []inv.Invariant
	for _, s := range p.slices {
		for _, i := range s.invs {
			if p.engine.Suppress(i) {
				suppressed = append(suppressed, i)
			}
		}
	}
	return suppressed
}

// Report returns the live invariants that are neither suppressed nor
// obvious, equality invariants first, then slices in creation order.
func (p *Point) Report() []inv.Invariant {
	var out []inv.Invariant
	for _, e := range p.equalities {
		if !e.Falsified() && !p.filters.IsObvious(e) {
			out = append(out, e)
		}
	}
	for _, s := range p.slices {
		for _, i := range s.invs {
			if i.Suppressed() || p.filters.IsObvious(i) {
				continue
			}
			out = append(out, i)
		}
	}
	return out
}

// FindInvariant returns the live invariant of kind over ids, in that
// order. Each variable stands for its equality class, so the lookup goes
// to the slice over the class leaders.
func (p *Point) FindInvariant(kind inv.Kind, ids ...vars.ID) inv.Invariant {
	leaders := make([]vars.ID, len(ids))
	for i, id := range ids {
		leaders[i] = p.classes.Leader(id)
	}
	s, ok := p.byKey[sliceKey(leaders)]
	if !ok {
		return nil
	}
	return s.Find(kind)
}

// Slice returns the slice over ids, or nil.
func (p *Point) Slice(ids ...vars.ID) *Slice { return p.byKey[sliceKey(ids)] }

// Slices returns the registered slices in creation order.
func (p *Point) Slices() []*Slice { return append([]*Slice(nil), p.slices...) }

func (p *Point) Arena() *vars.Arena { return p.arena }

func (p *Point) Classes() *vars.Classes { return p.classes }

func (p *Point) Engine() *suppress.Engine { return p.engine }

func (p *Point) Filters() *filter.Manager { return p.filters }

func (p *Point) Equalities() []*inv.Equality { return p.equalities }

// NumSamples counts the samples fed to the point, weighted by count.
func (p *Point) NumSamples() int { return p.samples }
