package inv

import (
	"go.uber.org/zap"

	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

// base carries the state every variant shares.
type base struct {
	id         int
	slice      SliceView
	falsified  bool
	reason     Reason
	suppressed bool
	logger     *zap.Logger
}

func newBase(cx *session.Session, s SliceView) base {
	return base{id: cx.NextInvariantID(), slice: s, logger: cx.Logger()}
}

func (b *base) ID() int              { return b.id }
func (b *base) Slice() SliceView     { return b.slice }
func (b *base) VarIDs() []vars.ID    { return b.slice.VarIDs() }
func (b *base) Falsified() bool      { return b.falsified }
func (b *base) Reason() Reason       { return b.reason }
func (b *base) Suppressed() bool     { return b.suppressed }
func (b *base) SetSuppressed(v bool) { b.suppressed = v }
func (b *base) name(i int) string    { return b.slice.Var(i).Name }
func (b *base) numSamples() int      { return b.slice.NumSamples() }

// falsify is one-way; the first reason wins.
func (b *base) falsify(r Reason) {
	if b.falsified {
		return
	}
	b.falsified = true
	b.reason = r
	b.logger.Debug("invariant falsified",
		zap.Int("id", b.id),
		zap.Stringer("reason", r),
	)
}
