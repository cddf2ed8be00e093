package inv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnolang/tinfer/internal/vars"
)

func TestIsSubarray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sub, seq []int64
		want     bool
	}{
		{nil, nil, true},
		{nil, []int64{1}, true},
		{[]int64{2, 3}, []int64{1, 2, 3, 4}, true},
		{[]int64{2, 4}, []int64{1, 2, 3, 4}, false},
		{[]int64{3, 4}, []int64{1, 2, 3, 4}, true},
		{[]int64{1, 2, 3}, []int64{1, 2}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isSubarray(tt.sub, tt.seq), "%v in %v", tt.sub, tt.seq)
	}
}

func TestSubSequence(t *testing.T) {
	t.Parallel()

	s := newFakeSlice(t, vars.RepIntSeq, vars.RepIntSeq)
	x, y := s.ids[0], s.ids[1]
	sub := newSubSequence[int64](testBase(s))
	assert.Equal(t, Unknown, sub.Justification())

	sub.Add([]int64{1, 2}, []int64{1, 2}, 0, 1)
	assert.Equal(t, "x == y (as subsequences)", sub.Format())
	assert.True(t, sub.Holds(x, y))
	assert.True(t, sub.Holds(y, x))

	sub.Add([]int64{2}, []int64{1, 2, 3}, 0, 1)
	assert.Equal(t, "x is a subsequence of y", sub.Format())
	assert.True(t, sub.Holds(x, y))
	assert.False(t, sub.Holds(y, x))
	assert.Equal(t, Justified, sub.Justification())

	sub.Add([]int64{5}, []int64{1}, 0, 1)
	assert.True(t, sub.Falsified())
	assert.Equal(t, ReasonNotSubsequence, sub.Reason())
	assert.False(t, sub.Holds(x, y))
}
