package inv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

// fakeSlice is a SliceView whose sample counts are set by the test.
type fakeSlice struct {
	arena   *vars.Arena
	classes *vars.Classes
	ids     []vars.ID
	n, mod  int
}

func (f *fakeSlice) VarIDs() []vars.ID       { return f.ids }
func (f *fakeSlice) Var(i int) *vars.Info    { return f.arena.Get(f.ids[i]) }
func (f *fakeSlice) Arity() int              { return len(f.ids) }
func (f *fakeSlice) NumSamples() int         { return f.n }
func (f *fakeSlice) NumModifiedSamples() int { return f.mod }
func (f *fakeSlice) Arena() *vars.Arena      { return f.arena }
func (f *fakeSlice) Classes() *vars.Classes  { return f.classes }

var testNames = []string{"x", "y", "z"}

// newFakeSlice declares one variable per rep, named x, y, z.
func newFakeSlice(t *testing.T, reps ...vars.RepType) *fakeSlice {
	t.Helper()

	a := vars.NewArena()
	f := &fakeSlice{arena: a}
	for i, r := range reps {
		id, err := a.Add(testNames[i], r)
		require.NoError(t, err)
		f.ids = append(f.ids, id)
	}
	return f
}

func testBase(s SliceView) base {
	return newBase(session.New(nil, nil), s)
}
