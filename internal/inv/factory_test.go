package inv

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tinfer/internal/config"
	"github.com/gnolang/tinfer/internal/session"
	"github.com/gnolang/tinfer/internal/vars"
)

func kinds(invs []Invariant) []Kind {
	out := make([]Kind, len(invs))
	for i, inv := range invs {
		out[i] = inv.Kind()
	}
	return out
}

func TestInstantiate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		reps []vars.RepType
		want []Kind
	}{
		{"int", []vars.RepType{vars.RepInt}, []Kind{KindOneOf, KindNonZero, KindLowerBound, KindUpperBound, KindModulus, KindNonModulus}},
		{"string", []vars.RepType{vars.RepString}, []Kind{KindOneOf}},
		{"int seq", []vars.RepType{vars.RepIntSeq}, []Kind{KindEltwiseOrder, KindEltNonZero}},
		{"float seq", []vars.RepType{vars.RepFloatSeq}, []Kind{KindEltwiseOrder}},
		{"int pair", []vars.RepType{vars.RepInt, vars.RepInt}, []Kind{KindComparison, KindLinearBinary}},
		{"float pair", []vars.RepType{vars.RepFloat, vars.RepFloat}, []Kind{KindComparison}},
		{"seq and scalar", []vars.RepType{vars.RepIntSeq, vars.RepInt}, []Kind{KindMember}},
		{"scalar and seq", []vars.RepType{vars.RepString, vars.RepStringSeq}, []Kind{KindMember}},
		{"two seqs", []vars.RepType{vars.RepIntSeq, vars.RepIntSeq}, []Kind{KindSeqComparison, KindSubSequence}},
		{"int triple", []vars.RepType{vars.RepInt, vars.RepInt, vars.RepInt}, []Kind{KindLinearTernary}},
		{"mixed scalars", []vars.RepType{vars.RepInt, vars.RepString}, nil},
		{"mismatched element", []vars.RepType{vars.RepIntSeq, vars.RepFloat}, nil},
		{"string triple", []vars.RepType{vars.RepString, vars.RepString, vars.RepString}, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cx := session.New(nil, nil)
			invs := Instantiate(cx, newFakeSlice(t, tt.reps...))
			if tt.want == nil {
				assert.Empty(t, invs)
				assert.False(t, Supported(ShapeOf(tt.reps...)))
				return
			}
			assert.Equal(t, tt.want, kinds(invs))
			assert.Equal(t, float64(len(invs)), testutil.ToFloat64(cx.Metrics.Instantiated))

			seen := make(map[int]bool)
			for _, inv := range invs {
				assert.False(t, seen[inv.ID()], "ids are unique")
				seen[inv.ID()] = true
				assert.False(t, inv.Falsified())
				assert.False(t, inv.Justification().Known() && inv.Justification() == Never)
			}
		})
	}
}

func TestInstantiateDisabledFamilies(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.EnableFloats = false
	cfg.EnableTernary = false
	cx := session.New(cfg, nil)

	assert.Empty(t, Instantiate(cx, newFakeSlice(t, vars.RepFloat)))
	assert.Empty(t, Instantiate(cx, newFakeSlice(t, vars.RepFloatSeq, vars.RepFloat)))
	assert.Empty(t, Instantiate(cx, newFakeSlice(t, vars.RepInt, vars.RepInt, vars.RepInt)))
	assert.NotEmpty(t, Instantiate(cx, newFakeSlice(t, vars.RepInt)))
}

func TestInstantiateSkipsObviousMember(t *testing.T) {
	t.Parallel()

	a := vars.NewArena()
	b, err := a.Add("B", vars.RepIntSeq)
	require.NoError(t, err)
	first, err := a.AddDerived("B[0]", vars.RepInt, vars.Derivation{Kind: vars.Initial, Base: b})
	require.NoError(t, err)

	cx := session.New(nil, nil)
	s := &fakeSlice{arena: a, ids: []vars.ID{b, first}}
	assert.Empty(t, Instantiate(cx, s))
	assert.Equal(t, 1.0, testutil.ToFloat64(cx.Metrics.ObviousSkipped))
	assert.Equal(t, 0.0, testutil.ToFloat64(cx.Metrics.Instantiated))
}

func TestShapeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(int[], int)", ShapeOf(vars.RepIntSeq, vars.RepInt).String())
}
