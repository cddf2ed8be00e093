package inv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tinfer/internal/sample"
	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

func TestEquality(t *testing.T) {
	t.Parallel()

	a := vars.NewArena()
	x, err := a.Add("x", vars.RepInt)
	require.NoError(t, err)
	y, err := a.Add("y", vars.RepInt)
	require.NoError(t, err)

	e := NewEquality(session.New(nil, nil), a, []vars.ID{x, y})
	assert.Nil(t, e.Slice())
	assert.Equal(t, []vars.ID{x, y}, e.VarIDs())
	assert.Equal(t, "x == y", e.Format())
	assert.Equal(t, Unknown, e.Justification())

	tup := sample.NewTuple(2)
	tup.Set(x, sample.IntValue{Val: 3}, sample.Modified)
	e.Check(tup, 1)
	assert.Equal(t, Unknown, e.Justification(), "tuples missing a member are ignored")

	tup.Set(y, sample.IntValue{Val: 3}, sample.Modified)
	e.Check(tup, 2)
	assert.Equal(t, Justified, e.Justification())

	tup.Set(y, sample.IntValue{Val: 4}, sample.Modified)
	e.Check(tup, 1)
	assert.True(t, e.Falsified())
}

func TestEqualityDegenerateClass(t *testing.T) {
	t.Parallel()

	a := vars.NewArena()
	x, err := a.Add("x", vars.RepInt)
	require.NoError(t, err)

	tup := sample.NewTuple(1)
	tup.Set(x, sample.IntValue{Val: 3}, sample.Modified)

	for _, ids := range [][]vars.ID{nil, {x}} {
		e := NewEquality(session.New(nil, nil), a, ids)
		assert.NotPanics(t, func() { e.Check(tup, 1) })
		assert.False(t, e.Falsified())
		assert.Equal(t, Unknown, e.Justification())
	}
}

func TestJustification(t *testing.T) {
	t.Parallel()

	assert.False(t, Unknown.Known())
	assert.True(t, Never.Known())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "1.0000", Justified.String())
	assert.Equal(t, Justified, fromChance(0))
	assert.Equal(t, Never, fromChance(1))
	assert.Equal(t, Unknown, halfChance(0))
	assert.InDelta(t, 0.75, float64(halfChance(2)), 1e-12)
}
