package ppt

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/sample"
	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

// Slice holds the candidate invariants over one variable tuple.
type Slice struct {
	cx      *session.Session
	logger  *zap.Logger
	arena   *vars.Arena
	classes *vars.Classes

	ids     []vars.ID
	infos   []*vars.Info
	key     string
	buckets []int

	instantiated bool
	invs         []inv.Invariant
	dispatch     dispatcher

	// onFalsified, when set, receives the candidates falsified by a
	// sample and returns any further invariants whose state changed.
	onFalsified func([]inv.Invariant) []inv.Invariant
	// onSampled, when set, receives the candidates that survived a sample
	// and returns the invariants whose suppression lifted because of
	// their new state.
	onSampled func([]inv.Invariant) []inv.Invariant
}

// NewSlice creates an uninstantiated slice over ids.
func NewSlice(cx *session.Session, arena *vars.Arena, classes *vars.Classes, ids ...vars.ID) (*Slice, error) {
	if len(ids) < 1 || len(ids) > 3 {
		return nil, fmt.Errorf("%w: got %d", ErrArity, len(ids))
	}
	s := &Slice{
		cx:      cx,
		logger:  cx.Logger(),
		arena:   arena,
		classes: classes,
		ids:     append([]vars.ID(nil), ids...),
		infos:   make([]*vars.Info, len(ids)),
		key:     sliceKey(ids),
		buckets: make([]int, 1<<len(ids)),
	}
	for i, id := range ids {
		v := arena.Get(id)
		if v == nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownVariable, id)
		}
		for _, prev := range ids[:i] {
			if prev == id {
				return nil, fmt.Errorf("%w: %s", ErrRepeatedVariable, v.Name)
			}
		}
		s.infos[i] = v
	}
	return s, nil
}

func sliceKey(ids []vars.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

// Instantiate asks the factories for the candidate set. It may run once.
func (s *Slice) Instantiate() error {
	if s.instantiated {
		return fmt.Errorf("%w: %s", ErrAlreadyInstantiated, s)
	}
	s.instantiated = true
	s.invs = inv.Instantiate(s.cx, s)
	if len(s.invs) > 0 {
		s.dispatch = dispatchers[inv.ShapeOfSlice(s)]
		if s.dispatch == nil {
			panic(fmt.Sprintf("ppt: candidates without a dispatcher for %s", inv.ShapeOfSlice(s)))
		}
	}
	return nil
}

// Add feeds one sample, observed count times, to the slice and returns the
// invariants whose state changed: those falsified, plus those whose
// suppression was lifted as a consequence of a falsification or of a
// suppressor changing its formula. A sample with any variable
// missing is ignored.
//
// Add panics when called before Instantiate, on a slice without
// candidates, with a non-positive count, or with a tuple narrower than the
// variable universe.
func (s *Slice) Add(t sample.Tuple, count int) []inv.Invariant {
	if !s.instantiated {
		panic("ppt: Add before Instantiate on " + s.String())
	}
	if len(s.invs) == 0 {
		panic("ppt: Add on slice without candidates " + s.String())
	}
	if count < 1 {
		panic(fmt.Sprintf("ppt: sample count %d on %s", count, s))
	}
	if t.Len() < s.arena.Len() {
		panic(fmt.Sprintf("ppt: tuple of %d values for %d variables", t.Len(), s.arena.Len()))
	}

	modifiedBefore := s.NumModifiedSamples() > 0
	idx := 0
	for _, id := range s.ids {
		mod := t.Mod(id)
		switch mod {
		case sample.Missing:
			return nil
		case sample.StaticConstant:
			if modifiedBefore {
				mod = sample.Unmodified
			} else {
				mod = sample.Modified
			}
		}
		idx = idx<<1 | int(mod)
	}
	s.buckets[idx] += count
	s.cx.Metrics.SamplesDispatched.Add(float64(count))

	vals := make([]sample.Value, len(s.ids))
	for i, id := range s.ids {
		vals[i] = t.Value(id)
	}
	s.dispatch(s.invs, vals, idx, count)

	changed := s.removeFalsified()
	if s.onSampled != nil {
		changed = append(changed, s.onSampled(s.invs)...)
	}
	return changed
}

func (s *Slice) removeFalsified() []inv.Invariant {
	var falsified []inv.Invariant
	live := s.invs[:0]
	for _, i := range s.invs {
		if i.Falsified() {
			falsified = append(falsified, i)
			continue
		}
		live = append(live, i)
	}
	if len(falsified) == 0 {
		return nil
	}
	for i := len(live); i < len(s.invs); i++ {
		s.invs[i] = nil
	}
	s.invs = live
	s.cx.Metrics.Falsified.Add(float64(len(falsified)))
	if ce := s.logger.Check(zap.DebugLevel, "slice candidates falsified"); ce != nil {
		ce.Write(
			zap.Stringer("slice", s),
			zap.Int("count", len(falsified)),
			zap.String("buckets", s.TupleModSummary()),
		)
	}

	changed := falsified
	if s.onFalsified != nil {
		changed = append(changed, s.onFalsified(falsified)...)
	}
	return changed
}

// Invariants returns the live candidates.
func (s *Slice) Invariants() []inv.Invariant {
	return append([]inv.Invariant(nil), s.invs...)
}

// Find returns the live candidate of the given kind, or nil.
func (s *Slice) Find(kind inv.Kind) inv.Invariant {
	for _, i := range s.invs {
		if i.Kind() == kind {
			return i
		}
	}
	return nil
}

// Empty reports whether the slice has no live candidates.
func (s *Slice) Empty() bool { return len(s.invs) == 0 }

func (s *Slice) Instantiated() bool { return s.instantiated }

func (s *Slice) VarIDs() []vars.ID { return s.ids }

func (s *Slice) Var(i int) *vars.Info { return s.infos[i] }

func (s *Slice) Arity() int { return len(s.ids) }

func (s *Slice) Arena() *vars.Arena { return s.arena }

func (s *Slice) Classes() *vars.Classes { return s.classes }

// Buckets returns a copy of the modification bucket counts.
func (s *Slice) Buckets() []int { return append([]int(nil), s.buckets...) }

// NumSamples is the number of accepted samples, weighted by count.
func (s *Slice) NumSamples() int {
	n := 0
	for _, c := range s.buckets {
		n += c
	}
	return n
}

// NumModifiedSamples counts accepted samples in which at least one
// variable was modified.
func (s *Slice) NumModifiedSamples() int {
	return s.NumSamples() - s.buckets[0]
}

// TupleModSummary renders the non-empty buckets, for example "UM=3, MM=1",
// with one letter per variable.
func (s *Slice) TupleModSummary() string {
	var parts []string
	k := len(s.ids)
	for idx, c := range s.buckets {
		if c == 0 {
			continue
		}
		tag := make([]byte, k)
		for i := 0; i < k; i++ {
			if idx&(1<<(k-1-i)) != 0 {
				tag[i] = 'M'
			} else {
				tag[i] = 'U'
			}
		}
		parts = append(parts, fmt.Sprintf("%s=%d", tag, c))
	}
	return strings.Join(parts, ", ")
}

func (s *Slice) String() string {
	return "<" + strings.Join(s.arena.Names(s.ids...), ", ") + ">"
}
