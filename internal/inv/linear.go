package inv

import (
	"fmt"

	"go.uber.org/zap"
)

// MinPairs is the number of distinct pairs a linear fit waits for before
// choosing its coefficients.
const MinPairs = 4

// LinearBinary is y = a*x + b over integers.
type LinearBinary struct {
	base
	a, b   int64
	locked bool

	xs, ys [MinPairs]int64
	cached int
}

func newLinearBinary(b base) *LinearBinary {
	return &LinearBinary{base: b}
}

func (l *LinearBinary) Kind() Kind { return KindLinearBinary }

// Coefficients returns a, b and whether they are fixed yet.
func (l *LinearBinary) Coefficients() (a, b int64, ok bool) {
	return l.a, l.b, l.locked
}

func (l *LinearBinary) Add(x, y int64, _, _ int) {
	if l.locked {
		if y != l.a*x+l.b {
			l.falsify(ReasonCounterexample)
		}
		return
	}

	for i := 0; i < l.cached; i++ {
		if l.xs[i] == x && l.ys[i] == y {
			return
		}
	}
	l.xs[l.cached] = x
	l.ys[l.cached] = y
	l.cached++
	if l.cached < MinPairs {
		return
	}

	// Fit through the two cached points farthest apart.
	maxI, maxJ := 0, 1
	var maxSep int64
	for i := 0; i < MinPairs; i++ {
		for j := i + 1; j < MinPairs; j++ {
			dx, dy := l.xs[i]-l.xs[j], l.ys[i]-l.ys[j]
			if sep := dx*dx + dy*dy; sep > maxSep {
				maxI, maxJ, maxSep = i, j, sep
			}
		}
	}
	if !l.fit(l.xs[maxI], l.ys[maxI], l.xs[maxJ], l.ys[maxJ]) {
		return
	}
	for i := 0; i < MinPairs; i++ {
		if l.ys[i] != l.a*l.xs[i]+l.b {
			l.falsify(ReasonCounterexample)
			return
		}
	}
}

func (l *LinearBinary) fit(x0, y0, x1, y1 int64) bool {
	if x0 == x1 {
		l.falsify(ReasonDegenerate)
		return false
	}
	l.a = (y1 - y0) / (x1 - x0)
	l.b = (y0*x1 - x0*y1) / (x1 - x0)
	l.locked = true
	l.logger.Debug("linear fit",
		zap.Int("id", l.id),
		zap.Int64("a", l.a),
		zap.Int64("b", l.b),
	)
	return true
}

func (l *LinearBinary) Justification() Justification {
	switch {
	case l.falsified:
		return Never
	case !l.locked:
		return Unknown
	}
	return Justified
}

func (l *LinearBinary) Format() string {
	x, y := l.name(0), l.name(1)
	if !l.locked {
		return fmt.Sprintf("%s = ? * %s + ?", y, x)
	}
	return fmt.Sprintf("%s = %s", y, linearTerms([]int64{l.a}, []string{x}, l.b))
}

func (l *LinearBinary) IsSameFormula(other Invariant) bool {
	o, ok := other.(*LinearBinary)
	return ok && l.locked && o.locked && l.a == o.a && l.b == o.b
}

// linearTerms renders c0*v0 + c1*v1 + ... + k, dropping zero terms and
// unit coefficients.
func linearTerms(coef []int64, names []string, k int64) string {
	var out string
	for i, c := range coef {
		if c == 0 {
			continue
		}
		term := names[i]
		switch {
		case c == -1 && out == "":
			term = "-" + term
		case c == -1:
		case c != 1 && c < 0 && out != "":
			term = fmt.Sprintf("%d * %s", -c, term)
		case c != 1:
			term = fmt.Sprintf("%d * %s", c, term)
		}
		switch {
		case out == "":
			out = term
		case c < 0:
			out += " - " + term
		default:
			out += " + " + term
		}
	}
	switch {
	case out == "":
		return fmt.Sprintf("%d", k)
	case k > 0:
		return fmt.Sprintf("%s + %d", out, k)
	case k < 0:
		return fmt.Sprintf("%s - %d", out, -k)
	}
	return out
}
