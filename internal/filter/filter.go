package filter

import (
	"slices"

	"github.com/gnolang/tinfer/internal/config"
	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/vars"
)

// Env is the variable metadata filters may consult.
type Env struct {
	Arena   *vars.Arena
	Classes *vars.Classes
}

// Filter recognises invariants that hold by construction. Filters look
// only at variables and formulas, never at sample statistics.
type Filter interface {
	Name() string
	Discard(env Env, i inv.Invariant) bool
}

type filterConstructor func() Filter

var allFilters = map[string]filterConstructor{
	"obvious-equality":               func() Filter { return obviousEquality{} },
	"obvious-subsequence-comparison": func() Filter { return obviousSeqComparison{} },
	"obvious-member":                 func() Filter { return obviousMember{} },
	"obvious-subsequence":            func() Filter { return obviousSubsequence{} },
	"obvious-comparison":             func() Filter { return obviousComparison{} },
}

// Names lists every known filter, sorted.
func Names() []string {
	names := make([]string, 0, len(allFilters))
	for name := range allFilters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Manager runs the enabled filters of one point.
type Manager struct {
	env     Env
	filters []Filter
}

// NewManager enables every filter the configuration does not turn off.
func NewManager(arena *vars.Arena, classes *vars.Classes, cfg *config.Config) *Manager {
	m := &Manager{env: Env{Arena: arena, Classes: classes}}
	for _, name := range Names() {
		if cfg != nil && !cfg.FilterEnabled(name) {
			continue
		}
		m.filters = append(m.filters, allFilters[name]())
	}
	return m
}

// IsObvious reports whether any enabled filter discards i.
func (m *Manager) IsObvious(i inv.Invariant) bool {
	return m.Why(i) != ""
}

// Why returns the name of the first filter that discards i, or "".
func (m *Manager) Why(i inv.Invariant) string {
	for _, f := range m.filters {
		if f.Discard(m.env, i) {
			return f.Name()
		}
	}
	return ""
}

// Enabled returns the names of the active filters.
func (m *Manager) Enabled() []string {
	names := make([]string, len(m.filters))
	for i, f := range m.filters {
		names[i] = f.Name()
	}
	return names
}
