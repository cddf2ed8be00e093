package infer

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/tinfer/internal/config"
	"github.com/gnolang/tinfer/internal/inv"
	"github.com/gnolang/tinfer/internal/ppt"
	"github.com/gnolang/tinfer/internal/session"
	tt "github.com/gnolang/tinfer/internal/types"
)

// New loads the configuration at cfgPath, or the defaults when cfgPath is
// empty, and starts a session.
func New(cfgPath string, logger *zap.Logger) (*session.Session, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return nil, err
		}
	}
	return session.New(cfg, logger), nil
}

// LoadFiles reads every trace file and builds its points under cx.
func LoadFiles(cx *session.Session, paths []string) ([]*Input, error) {
	var inputs []*Input
	for _, path := range paths {
		tr, err := LoadTrace(path)
		if err != nil {
			return nil, err
		}
		in, err := tr.Build(cx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		inputs = append(inputs, in...)
	}
	return inputs, nil
}

// Run feeds every point its samples, runs the suppression pass and
// collects the reports, in input order. Points run in parallel; the
// context is only checked before a point starts. onDone, if set, is
// called with the point name after each point finishes.
func Run(ctx context.Context, cx *session.Session, inputs []*Input, onDone func(string)) ([]tt.PointReport, error) {
	reports := make([]tt.PointReport, len(inputs))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for n, in := range inputs {
		n, in := n, in
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[n] = processPoint(cx, in)
			if onDone != nil {
				mu.Lock()
				onDone(in.Point.Name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

func processPoint(cx *session.Session, in *Input) tt.PointReport {
	p := in.Point
	for _, s := range in.Samples {
		p.Add(s.Tuple, s.Count)
	}
	p.Suppress()

	report := tt.PointReport{
		Point:    p.Name,
		Samples:  p.NumSamples(),
		Findings: []tt.Finding{},
	}
	for _, i := range p.Report() {
		j := i.Justification()
		if !j.Known() || float64(j) < cx.Config.MinJustification {
			continue
		}
		report.Findings = append(report.Findings, finding(p, i))
	}
	report.Hidden = countLive(p) - len(report.Findings)

	cx.Logger().Debug("point done",
		zap.String("ppt", p.Name),
		zap.Int("samples", report.Samples),
		zap.Int("findings", len(report.Findings)),
		zap.Int("hidden", report.Hidden),
	)
	return report
}

func finding(p *ppt.Point, i inv.Invariant) tt.Finding {
	return tt.Finding{
		ID:            i.ID(),
		Kind:          i.Kind().String(),
		Formula:       i.Format(),
		Vars:          p.Arena().Names(i.VarIDs()...),
		Justification: float64(i.Justification()),
	}
}

// countLive counts the invariants still standing at p, reported or not.
func countLive(p *ppt.Point) int {
	n := 0
	for _, e := range p.Equalities() {
		if !e.Falsified() {
			n++
		}
	}
	for _, s := range p.Slices() {
		n += len(s.Invariants())
	}
	return n
}
