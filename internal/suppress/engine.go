package suppress

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

// Host gives factories access to the invariants of a point.
type Host interface {
	Arena() *vars.Arena
	// FindInvariant returns the live invariant of the given kind over
	// ids, in that order, or nil. A variable that is not its class leader
	// resolves to the invariant over the leader.
	FindInvariant(kind inv.Kind, ids ...vars.ID) inv.Invariant
}

// Link is one reason an invariant is suppressed.
type Link struct {
	Suppressed  inv.Invariant
	Suppressors []inv.Invariant
	// Transform maps each variable of the suppressed invariant to the
	// variable that stands in for it in the first suppressor.
	Transform map[vars.ID]vars.ID
	Factory   string

	factory Factory
}

func (l *Link) String() string {
	ids := make([]string, len(l.Suppressors))
	for i, s := range l.Suppressors {
		ids[i] = fmt.Sprintf("#%d", s.ID())
	}
	return fmt.Sprintf("#%d <- [%s] (%s)", l.Suppressed.ID(), strings.Join(ids, ", "), l.Factory)
}

// Factory searches for witnesses of one kind of implication.
type Factory interface {
	Name() string
	Kinds() []inv.Kind
	Generate(h Host, i inv.Invariant) *Link
	// Valid reports whether a link built by Generate still implies its
	// suppressed invariant, given the current state of its suppressors.
	Valid(l *Link) bool
}

var allFactories = []Factory{
	SubsetImplied{},
}

// Engine owns the suppression links of one point. It is not safe for
// concurrent use.
type Engine struct {
	host    Host
	logger  *zap.Logger
	metrics *session.Metrics

	factories  map[inv.Kind][]Factory
	links      map[int]*Link
	dependents map[int]map[int]inv.Invariant
}

func NewEngine(cx *session.Session, h Host) *Engine {
	e := &Engine{
		host:       h,
		logger:     cx.Logger(),
		metrics:    cx.Metrics,
		factories:  make(map[inv.Kind][]Factory),
		links:      make(map[int]*Link),
		dependents: make(map[int]map[int]inv.Invariant),
	}
	for _, f := range allFactories {
		for _, k := range f.Kinds() {
			e.factories[k] = append(e.factories[k], f)
		}
	}
	return e
}

// TrySuppress returns the first link any factory can build for i, without
// installing it.
func (e *Engine) TrySuppress(i inv.Invariant) *Link {
	if i.Falsified() {
		return nil
	}
	for _, f := range e.factories[i.Kind()] {
		if l := f.Generate(e.host, i); l != nil {
			l.Factory, l.factory = f.Name(), f
			return l
		}
	}
	return nil
}

// Suppress links i to witnesses if it is not already suppressed. It
// reports whether a link was installed.
func (e *Engine) Suppress(i inv.Invariant) bool {
	if i.Falsified() || i.Suppressed() {
		return false
	}
	l := e.TrySuppress(i)
	if l == nil {
		return false
	}
	e.install(l)
	return true
}

// LinkOf returns the active link of i, or nil.
func (e *Engine) LinkOf(i inv.Invariant) *Link {
	return e.links[i.ID()]
}

// Len returns the number of active links.
func (e *Engine) Len() int { return len(e.links) }

// Falsified updates the graph after i was falsified and returns the
// invariants that became visible as a result.
func (e *Engine) Falsified(i inv.Invariant) []inv.Invariant {
	id := i.ID()
	if _, ok := e.links[id]; ok {
		e.unlink(id)
		i.SetSuppressed(false)
	}

	deps := e.dependents[id]
	delete(e.dependents, id)
	return e.reevaluate(id, deps)
}

// Recheck re-validates the links that name i as a suppressor, after i saw
// new samples. A link whose implication no longer holds is replaced or
// dropped; the invariants that became visible are returned.
func (e *Engine) Recheck(i inv.Invariant) []inv.Invariant {
	id := i.ID()
	deps := e.dependents[id]
	if len(deps) == 0 {
		return nil
	}
	stale := make(map[int]inv.Invariant)
	for d, dep := range deps {
		if l := e.links[d]; l == nil || l.factory == nil || !l.factory.Valid(l) {
			stale[d] = dep
		}
	}
	return e.reevaluate(id, stale)
}

// reevaluate unlinks every dependent and tries to suppress it again, in ID
// order. cause is the suppressor whose change triggered it.
func (e *Engine) reevaluate(cause int, deps map[int]inv.Invariant) []inv.Invariant {
	if len(deps) == 0 {
		return nil
	}

	ids := make([]int, 0, len(deps))
	for d := range deps {
		ids = append(ids, d)
	}
	slices.Sort(ids)

	var changed []inv.Invariant
	for _, d := range ids {
		dep := deps[d]
		e.unlink(d)
		dep.SetSuppressed(false)
		if l := e.TrySuppress(dep); l != nil {
			e.install(l)
			continue
		}
		e.metrics.Unsuppressed.Inc()
		e.logger.Debug("invariant unsuppressed",
			zap.Int("id", d),
			zap.Int("cause", cause),
		)
		changed = append(changed, dep)
	}
	return changed
}

func (e *Engine) install(l *Link) {
	id := l.Suppressed.ID()
	e.links[id] = l
	for _, s := range l.Suppressors {
		deps, ok := e.dependents[s.ID()]
		if !ok {
			deps = make(map[int]inv.Invariant)
			e.dependents[s.ID()] = deps
		}
		deps[id] = l.Suppressed
	}
	l.Suppressed.SetSuppressed(true)
	e.metrics.Suppressed.Inc()
	e.logger.Debug("invariant suppressed", zap.Stringer("link", l))
}

// unlink drops the link of id from every index.
func (e *Engine) unlink(id int) {
	l, ok := e.links[id]
	if !ok {
		return
	}
	delete(e.links, id)
	for _, s := range l.Suppressors {
		if deps, ok := e.dependents[s.ID()]; ok {
			delete(deps, id)
			if len(deps) == 0 {
				delete(e.dependents, s.ID())
			}
		}
	}
}
