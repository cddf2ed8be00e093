package infer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tinfer/internal/config"
	"github.com/gnolang/tinfer/internal/session"
)

const linearTrace = `
points:
  - name: "f():::EXIT"
    vars:
      - {name: x, rep: int}
      - {name: y, rep: int}
    samples:
      - values: {x: 1, y: 3}
      - values: {x: 2, y: 5}
      - values: {x: 3, y: 7}
      - values: {x: 4, y: 9}
      - values: {x: 5, y: 11}
`

const equalTrace = `
points:
  - name: "g():::EXIT"
    vars:
      - {name: a, rep: int}
      - {name: b, rep: int}
    equal:
      - [a, b]
    samples:
      - count: 3
        values: {a: 4, b: 4}
`

func writeTrace(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNew(t *testing.T) {
	t.Parallel()

	cx, err := New("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cx.Config)

	path := filepath.Join(t.TempDir(), ".tinfer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_one_of: 5\nsuppression: false\n"), 0o644))
	cx, err = New(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cx.Config.MaxOneOf)
	assert.False(t, cx.Config.Suppression)

	_, err = New(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestRunLinear(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cx := session.New(nil, nil)
	inputs, err := LoadFiles(cx, []string{writeTrace(t, dir, "linear.yaml", linearTrace)})
	require.NoError(t, err)

	reports, err := Run(context.Background(), cx, inputs, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "f():::EXIT", r.Point)
	assert.Equal(t, 5, r.Samples)
	require.Len(t, r.Findings, 1)
	assert.Equal(t, "y = 2 * x + 1", r.Findings[0].Formula)
	assert.Equal(t, "linear-binary", r.Findings[0].Kind)
	assert.Equal(t, []string{"x", "y"}, r.Findings[0].Vars)
	assert.Equal(t, 1.0, r.Findings[0].Justification)
	// Non-zero, the bounds and x < y stand but are not confident enough,
	// as do y = 1 (mod 2) and the non-modulus candidates.
	assert.Equal(t, 10, r.Hidden)
}

func TestRunMinJustification(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.MinJustification = 0.4
	cx := session.New(cfg, nil)

	tr, err := ParseTrace(strings.NewReader(linearTrace))
	require.NoError(t, err)
	inputs, err := tr.Build(cx)
	require.NoError(t, err)

	reports, err := Run(context.Background(), cx, inputs, nil)
	require.NoError(t, err)

	var got []string
	for _, f := range reports[0].Findings {
		got = append(got, f.Formula)
	}
	sort.Strings(got)
	assert.Equal(t, []string{"x != 0", "x < y", "y != 0", "y = 1 (mod 2)", "y = 2 * x + 1"}, got)
	assert.Equal(t, 6, reports[0].Hidden, "bounds and non-modulus stay below 0.4")
}

func TestRunManyPoints(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cx := session.New(nil, nil)
	inputs, err := LoadFiles(cx, []string{
		writeTrace(t, dir, "linear.yaml", linearTrace),
		writeTrace(t, dir, "equal.yaml", equalTrace),
	})
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	var done []string
	reports, err := Run(context.Background(), cx, inputs, func(name string) {
		done = append(done, name)
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.ElementsMatch(t, []string{"f():::EXIT", "g():::EXIT"}, done)

	// reports keep input order
	assert.Equal(t, "f():::EXIT", reports[0].Point)
	assert.Equal(t, "g():::EXIT", reports[1].Point)

	eq := reports[1]
	assert.Equal(t, 3, eq.Samples)
	require.NotEmpty(t, eq.Findings)
	assert.Equal(t, "a == b", eq.Findings[0].Formula)
	assert.Equal(t, "equality", eq.Findings[0].Kind)
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	cx := session.New(nil, nil)
	tr, err := ParseTrace(strings.NewReader(linearTrace))
	require.NoError(t, err)
	inputs, err := tr.Build(cx)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, cx, inputs, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFilesError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeTrace(t, dir, "bad.yaml", "points:\n  - name: p\n    vars: [{name: x, rep: bool}]\n")
	_, err := LoadFiles(session.New(nil, nil), []string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
