package infer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/tinfer/internal/ppt"
	"github.com/gnolang/tinfer/internal/sample"
	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

var ErrTrace = errors.New("infer: invalid trace")

// Trace is the YAML form of a set of program points and their samples.
//
//	points:
//	  - name: "Stack.push(int):::EXIT"
//	    vars:
//	      - {name: B, rep: "int[]"}
//	      - {name: I, rep: int}
//	      - name: "B[0..I-1]"
//	        rep: "int[]"
//	        derived: {kind: subsequence, base: B, index: I, shift: -1, from_start: true}
//	    equal:
//	      - [x, y]
//	    samples:
//	      - count: 2
//	        values:
//	          B: [1, 2, 3]
//	          I: 2
//	          "B[0..I-1]": {value: [1, 2], mod: unmodified}
//
// Variables absent from a sample are missing. Values without a tag are
// modified, or static for variables declared static.
type Trace struct {
	Points []PointSpec `yaml:"points"`
}

type PointSpec struct {
	Name    string       `yaml:"name"`
	Vars    []VarSpec    `yaml:"vars"`
	Equal   [][]string   `yaml:"equal"`
	Samples []SampleSpec `yaml:"samples"`
}

type VarSpec struct {
	Name    string       `yaml:"name"`
	Rep     string       `yaml:"rep"`
	Static  bool         `yaml:"static"`
	Derived *DerivedSpec `yaml:"derived"`
}

type DerivedSpec struct {
	Kind      string `yaml:"kind"`
	Base      string `yaml:"base"`
	Index     string `yaml:"index"`
	Shift     int    `yaml:"shift"`
	Offset    int    `yaml:"offset"`
	FromStart bool   `yaml:"from_start"`
}

type SampleSpec struct {
	Count  int                  `yaml:"count"`
	Values map[string]ValueSpec `yaml:"values"`
}

// ValueSpec is either a bare value or a mapping with value and mod keys.
type ValueSpec struct {
	Value yaml.Node
	Mod   string
}

func (v *ValueSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		v.Value = *n
		return nil
	}
	var aux struct {
		Value yaml.Node `yaml:"value"`
		Mod   string    `yaml:"mod"`
	}
	if err := n.Decode(&aux); err != nil {
		return err
	}
	v.Value, v.Mod = aux.Value, aux.Mod
	return nil
}

// Input is a point ready to be fed, with its samples in arrival order.
type Input struct {
	Point   *ppt.Point
	Samples []Sample
}

type Sample struct {
	Tuple sample.Tuple
	Count int
}

// LoadTrace reads a YAML trace file.
func LoadTrace(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr, err := ParseTrace(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tr, nil
}

func ParseTrace(r io.Reader) (*Trace, error) {
	var tr Trace
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// Build creates the points of the trace, with their slices, under cx.
func (tr *Trace) Build(cx *session.Session) ([]*Input, error) {
	inputs := make([]*Input, 0, len(tr.Points))
	for _, ps := range tr.Points {
		in, err := ps.build(cx)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", ps.Name, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (ps *PointSpec) build(cx *session.Session) (*Input, error) {
	arena := vars.NewArena()
	static := make(map[vars.ID]bool)
	for _, vs := range ps.Vars {
		id, err := addVar(arena, vs)
		if err != nil {
			return nil, err
		}
		static[id] = vs.Static
	}

	groups := make([][]vars.ID, 0, len(ps.Equal))
	for _, names := range ps.Equal {
		g := make([]vars.ID, 0, len(names))
		for _, n := range names {
			id, ok := arena.Lookup(n)
			if !ok {
				return nil, fmt.Errorf("equality class: %w: %s", vars.ErrUnknownVariable, n)
			}
			g = append(g, id)
		}
		groups = append(groups, g)
	}
	classes, err := vars.NewClasses(groups...)
	if err != nil {
		return nil, err
	}

	p := ppt.NewPoint(cx, ps.Name, arena, classes)
	if err := p.CreateSlices(); err != nil {
		return nil, err
	}

	in := &Input{Point: p, Samples: make([]Sample, 0, len(ps.Samples))}
	for n, ss := range ps.Samples {
		s, err := ss.build(arena, static)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", n, err)
		}
		in.Samples = append(in.Samples, s)
	}
	return in, nil
}

func addVar(arena *vars.Arena, vs VarSpec) (vars.ID, error) {
	rep, err := vars.ParseRepType(vs.Rep)
	if err != nil {
		return vars.NoID, fmt.Errorf("var %q: %w", vs.Name, err)
	}
	if vs.Derived == nil {
		return arena.Add(vs.Name, rep)
	}

	ds := vs.Derived
	kind, ok := vars.ParseDerivationKind(ds.Kind)
	if !ok {
		return vars.NoID, fmt.Errorf("%w: var %q: unknown derivation %q", ErrTrace, vs.Name, ds.Kind)
	}
	base, ok := arena.Lookup(ds.Base)
	if !ok {
		return vars.NoID, fmt.Errorf("var %q: %w: base %s", vs.Name, vars.ErrUnknownVariable, ds.Base)
	}
	index := vars.NoID
	if ds.Index != "" {
		if index, ok = arena.Lookup(ds.Index); !ok {
			return vars.NoID, fmt.Errorf("var %q: %w: index %s", vs.Name, vars.ErrUnknownVariable, ds.Index)
		}
	}
	return arena.AddDerived(vs.Name, rep, vars.Derivation{
		Kind:      kind,
		Base:      base,
		Index:     index,
		Shift:     ds.Shift,
		Offset:    ds.Offset,
		FromStart: ds.FromStart,
	})
}

func (ss *SampleSpec) build(arena *vars.Arena, static map[vars.ID]bool) (Sample, error) {
	count := ss.Count
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return Sample{}, fmt.Errorf("%w: negative count %d", ErrTrace, count)
	}

	t := sample.NewTuple(arena.Len())
	for name, vs := range ss.Values {
		id, ok := arena.Lookup(name)
		if !ok {
			return Sample{}, fmt.Errorf("%w: %s", vars.ErrUnknownVariable, name)
		}
		mod := sample.Modified
		if static[id] {
			mod = sample.StaticConstant
		}
		if vs.Mod != "" {
			m, err := sample.ParseModTag(vs.Mod)
			if err != nil {
				return Sample{}, fmt.Errorf("%w: %s: %v", ErrTrace, name, err)
			}
			mod = m
		}
		if mod == sample.Missing || vs.Value.Kind == 0 {
			t.Set(id, nil, sample.Missing)
			continue
		}
		v, err := decodeValue(&vs.Value, arena.Get(id).Rep)
		if err != nil {
			return Sample{}, fmt.Errorf("%w: %s: %v", ErrTrace, name, err)
		}
		t.Set(id, v, mod)
	}
	return Sample{Tuple: t, Count: count}, nil
}

func decodeValue(n *yaml.Node, rep vars.RepType) (sample.Value, error) {
	switch rep {
	case vars.RepInt:
		var v int64
		err := n.Decode(&v)
		return sample.IntValue{Val: v}, err
	case vars.RepFloat:
		var v float64
		err := n.Decode(&v)
		return sample.FloatValue{Val: v}, err
	case vars.RepString:
		var v string
		err := n.Decode(&v)
		return sample.StringValue{Val: v}, err
	case vars.RepIntSeq:
		var v []int64
		err := n.Decode(&v)
		return sample.IntSeq{Vals: v}, err
	case vars.RepFloatSeq:
		var v []float64
		err := n.Decode(&v)
		return sample.FloatSeq{Vals: v}, err
	case vars.RepStringSeq:
		var v []string
		err := n.Decode(&v)
		return sample.StringSeq{Vals: v}, err
	}
	return nil, fmt.Errorf("unsupported representation %s", rep)
}
