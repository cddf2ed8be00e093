package inv

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tinfer/internal/vars"
)

func TestOneOf(t *testing.T) {
	t.Parallel()

	o := newOneOf(testBase(newFakeSlice(t, vars.RepInt)), 3, formatInt)
	assert.Equal(t, Unknown, o.Justification())

	o.Add(7, 1, 1)
	assert.Equal(t, "x == 7", o.Format())

	o.Add(2, 1, 1)
	o.Add(7, 1, 1)
	o.Add(5, 1, 1)
	assert.Equal(t, []int64{2, 5, 7}, o.Values())
	assert.Equal(t, "x one of { 2, 5, 7 }", o.Format())
	assert.False(t, o.Falsified())

	o.Add(1, 1, 1)
	assert.True(t, o.Falsified())
	assert.Equal(t, ReasonTooManyValues, o.Reason())
}

func TestOneOfStrings(t *testing.T) {
	t.Parallel()

	a := newOneOf(testBase(newFakeSlice(t, vars.RepString)), 2, strconv.Quote)
	b := newOneOf(testBase(newFakeSlice(t, vars.RepString)), 2, strconv.Quote)
	a.Add("b", 1, 1)
	a.Add("a", 1, 1)
	b.Add("a", 1, 1)
	assert.Equal(t, `x one of { "a", "b" }`, a.Format())
	assert.False(t, a.IsSameFormula(b))
	b.Add("b", 1, 1)
	assert.True(t, a.IsSameFormula(b))
}

func TestNonZero(t *testing.T) {
	t.Parallel()

	z := newNonZero(testBase(newFakeSlice(t, vars.RepInt)))
	assert.Equal(t, Unknown, z.Justification())

	z.Add(-2, 1, 1)
	z.Add(2, 1, 3)
	// range [-2, 2] has width 5, four weighted samples
	want := 1 - math.Pow(1-1.0/5, 4)
	assert.InDelta(t, want, float64(z.Justification()), 1e-12)
	assert.Equal(t, "x != 0", z.Format())

	z.Add(0, 1, 1)
	assert.True(t, z.Falsified())
	assert.Equal(t, Never, z.Justification())
}

func TestNonZeroSingleValue(t *testing.T) {
	t.Parallel()

	z := newNonZero(testBase(newFakeSlice(t, vars.RepInt)))
	z.Add(9, 1, 1)
	assert.Equal(t, Justified, z.Justification())
}

func TestEltNonZero(t *testing.T) {
	t.Parallel()

	z := newEltNonZero(testBase(newFakeSlice(t, vars.RepIntSeq)))
	z.Add(nil, 1, 1)
	assert.Equal(t, Unknown, z.Justification())
	z.Add([]int64{1, 3}, 1, 1)
	assert.True(t, z.Justification().Known())
	assert.Equal(t, "x elements != 0", z.Format())
	z.Add([]int64{4, 0}, 1, 1)
	assert.True(t, z.Falsified())
}

func TestEltwiseOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seqs      [][]int64
		want      string
		falsified bool
	}{
		{"sorted strictly", [][]int64{{1, 2, 3}, {0, 5}}, "x sorted by <", false},
		{"non-decreasing", [][]int64{{1, 1, 2}, {3}}, "x sorted by <=", false},
		{"constant", [][]int64{{4, 4}}, "x sorted by ==", false},
		{"descending", [][]int64{{3, 2}, {9, 1}}, "x sorted by >", false},
		{"short only", [][]int64{{1}, {}}, "x elements ?cmp?", false},
		{"unsorted", [][]int64{{1, 3, 2}}, "", true},
	}
	for _, tt := range tests {
		e := newEltwiseOrder[int64](testBase(newFakeSlice(t, vars.RepIntSeq)))
		for _, s := range tt.seqs {
			e.Add(s, 1, 1)
		}
		assert.Equal(t, tt.falsified, e.Falsified(), tt.name)
		if !tt.falsified {
			assert.Equal(t, tt.want, e.Format(), tt.name)
		}
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	type obs struct {
		v     int64
		count int
	}
	tests := []struct {
		name         string
		samples      []obs
		lower, upper string
		lowJ, highJ  Justification
	}{
		{
			name:    "single hits",
			samples: []obs{{1, 1}, {2, 1}, {3, 1}, {4, 1}},
			lower:   "x >= 1",
			upper:   "x <= 4",
			lowJ:    Never,
			highJ:   Never,
		},
		{
			// 12 samples over [0, 9]: the minimum is hit 5 times, more
			// than twice the uniform 1.2.
			name:    "crowded minimum",
			samples: []obs{{0, 5}, {3, 1}, {5, 2}, {7, 1}, {9, 3}},
			lower:   "x >= 0",
			upper:   "x <= 9",
			lowJ:    Justified,
			highJ:   Justified,
		},
		{
			// 20 samples over [0, 4]: 4 per value on average. The maximum
			// and its neighbour both beat half of that.
			name:    "with neighbour",
			samples: []obs{{0, 2}, {1, 6}, {2, 6}, {3, 3}, {4, 3}},
			lower:   "x >= 0",
			upper:   "x <= 4",
			lowJ:    Never,
			highJ:   Justified,
		},
		{
			name:    "negative values",
			samples: []obs{{-7, 4}, {-3, 1}, {-1, 1}},
			lower:   "x >= -7",
			upper:   "x <= -1",
			lowJ:    Justified,
			highJ:   Never,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lo := newLowerBound(testBase(newFakeSlice(t, vars.RepInt)))
			hi := newUpperBound(testBase(newFakeSlice(t, vars.RepInt)))
			assert.Equal(t, Unknown, lo.Justification())
			assert.Equal(t, Unknown, hi.Justification())
			for _, s := range tt.samples {
				lo.Add(s.v, 1, s.count)
				hi.Add(s.v, 1, s.count)
			}
			assert.Equal(t, tt.lower, lo.Format())
			assert.Equal(t, tt.upper, hi.Format())
			assert.Equal(t, tt.lowJ, lo.Justification())
			assert.Equal(t, tt.highJ, hi.Justification())
			assert.False(t, lo.Falsified())
			assert.False(t, hi.Falsified())
		})
	}
}

func TestBoundNeighbourFollowsNewExtreme(t *testing.T) {
	t.Parallel()

	lo := newLowerBound(testBase(newFakeSlice(t, vars.RepInt)))
	lo.Add(5, 1, 3)
	lo.Add(9, 1, 1)
	assert.Equal(t, Justified, lo.Justification())

	// a lone smaller value takes over as the bound and pushes 5 to second
	lo.Add(2, 1, 1)
	assert.Equal(t, int64(2), lo.Min())
	assert.Equal(t, "x >= 2", lo.Format())
	assert.Equal(t, Never, lo.Justification())

	other := newLowerBound(testBase(newFakeSlice(t, vars.RepInt)))
	assert.False(t, lo.IsSameFormula(other))
	other.Add(2, 1, 1)
	assert.True(t, lo.IsSameFormula(other))
}

func TestModulus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		values    []int64
		want      string
		falsified bool
	}{
		{"odd", []int64{3, 5, 11}, "x = 1 (mod 2)", false},
		{"negative start", []int64{-4, 2, 8}, "x = 2 (mod 6)", false},
		{"constant", []int64{7, 7}, "x = ? (mod ?)", false},
		{"coprime gaps", []int64{0, 4, 6, 9}, "", true},
		{"full range", []int64{math.MinInt64, math.MaxInt64}, "x = 9223372036854775807 (mod 18446744073709551615)", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newModulus(testBase(newFakeSlice(t, vars.RepInt)))
			for _, v := range tt.values {
				d.Add(v, 1, 1)
			}
			assert.Equal(t, tt.falsified, d.Falsified())
			if tt.falsified {
				assert.Equal(t, ReasonNoModulus, d.Reason())
				assert.Equal(t, Never, d.Justification())
				return
			}
			assert.Equal(t, tt.want, d.Format())
		})
	}
}

func TestModulusJustification(t *testing.T) {
	t.Parallel()

	d := newModulus(testBase(newFakeSlice(t, vars.RepInt)))
	d.Add(1, 1, 1)
	assert.Equal(t, Unknown, d.Justification())
	d.Add(4, 1, 2)
	// three weighted samples, each 1/3 likely to share the residue
	assert.InDelta(t, 1-math.Pow(1.0/3, 3), float64(d.Justification()), 1e-12)

	r, m, ok := d.Modulus()
	require.True(t, ok)
	assert.Equal(t, uint64(1), r)
	assert.Equal(t, uint64(3), m)

	e := newModulus(testBase(newFakeSlice(t, vars.RepInt)))
	e.Add(10, 1, 1)
	e.Add(7, 1, 1)
	assert.True(t, d.IsSameFormula(e))
}

func TestNonModulus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []int64
		want   string
		found  bool
	}{
		{"too few values", []int64{1, 2, 4, 5, 7}, "x != ? (mod ?)", false},
		{"misses zero mod 3", []int64{1, 2, 4, 5, 7, 8}, "x != 0 (mod 3)", true},
		{"negative values", []int64{-1, -2, -4, -5, -7, -8}, "x != 0 (mod 3)", true},
		{"every residue", []int64{0, 1, 2, 3, 4, 5, 6, 7}, "x != ? (mod ?)", false},
		{"smallest modulus wins", []int64{1, 2, 3, 5, 6, 7, 9, 10}, "x != 0 (mod 4)", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newNonModulus(testBase(newFakeSlice(t, vars.RepInt)))
			for _, v := range tt.values {
				d.Add(v, 1, 1)
			}
			assert.Equal(t, tt.want, d.Format())
			_, _, ok := d.NonModulus()
			assert.Equal(t, tt.found, ok)
			if !tt.found {
				assert.Equal(t, Never, d.Justification())
			}
		})
	}
}

func TestNonModulusJustification(t *testing.T) {
	t.Parallel()

	d := newNonModulus(testBase(newFakeSlice(t, vars.RepInt)))
	assert.Equal(t, Unknown, d.Justification())
	for _, v := range []int64{1, 2, 4, 5, 7, 8} {
		d.Add(v, 1, 5)
	}
	want := 1 - 3*math.Pow(2.0/3, 30)
	assert.InDelta(t, want, float64(d.Justification()), 1e-12)

	// a residue-zero value leaves nothing uncovered
	d.Add(9, 1, 1)
	assert.Equal(t, Never, d.Justification())
	assert.False(t, d.Falsified())
}

func TestNonModulusTooManyValues(t *testing.T) {
	t.Parallel()

	d := newNonModulus(testBase(newFakeSlice(t, vars.RepInt)))
	for v := int64(0); v < nonModulusLimit; v++ {
		d.Add(v, 1, 1)
	}
	assert.False(t, d.Falsified())
	d.Add(0, 1, 1)
	assert.False(t, d.Falsified(), "repeats are free")
	d.Add(nonModulusLimit, 1, 1)
	assert.True(t, d.Falsified())
	assert.Equal(t, ReasonTooManyValues, d.Reason())
}
