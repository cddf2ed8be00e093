package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tinfer/internal/config"
	tt "github.com/gnolang/tinfer/internal/types"
)

var reports = []tt.PointReport{{
	Point:   "f():::EXIT",
	Samples: 5,
	Findings: []tt.Finding{
		{ID: 4, Kind: "linear-binary", Formula: "y = 2 * x + 1", Vars: []string{"x", "y"}, Justification: 1},
	},
	Hidden: 3,
}}

func writeTrace(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "trace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCache(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	dir := filepath.Join(tmp, "cache")
	c, err := New(dir, 0)
	require.NoError(t, err)

	t.Run("NotFound", func(t *testing.T) {
		_, ok := c.Get("absent.yaml", "k")
		assert.False(t, ok)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, c.Set("trace.yaml", "k1", reports))
		got, ok := c.Get("trace.yaml", "k1")
		require.True(t, ok)
		assert.Equal(t, reports, got)
	})

	t.Run("KeyMismatch", func(t *testing.T) {
		require.NoError(t, c.Set("other.yaml", "k1", reports))
		_, ok := c.Get("other.yaml", "k2")
		assert.False(t, ok)
		// a stale entry is dropped
		_, ok = c.Get("other.yaml", "k1")
		assert.False(t, ok)
	})

	t.Run("Persisted", func(t *testing.T) {
		reopened, err := New(dir, 0)
		require.NoError(t, err)
		got, ok := reopened.Get("trace.yaml", "k1")
		require.True(t, ok)
		assert.Equal(t, reports, got)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		require.NoError(t, c.InvalidateAll())
		assert.Zero(t, c.Len())
		reopened, err := New(dir, 0)
		require.NoError(t, err)
		assert.Zero(t, reopened.Len())
	})
}

func TestCacheMaxAge(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), time.Nanosecond)
	require.NoError(t, err)
	require.NoError(t, c.Set("trace.yaml", "k", reports))

	time.Sleep(time.Millisecond)
	_, ok := c.Get("trace.yaml", "k")
	assert.False(t, ok)
}

func TestCacheCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile), []byte("not gob"), 0o644))
	_, err := New(dir, 0)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTrace(t, dir, "points: []\n")

	cfg := config.Default()
	k1, err := Key(path, cfg)
	require.NoError(t, err)
	k2, err := Key(path, cfg)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	other := config.Default()
	other.MaxOneOf = 5
	k3, err := Key(path, other)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	writeTrace(t, dir, "points: [{name: p}]\n")
	k4, err := Key(path, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k4)

	_, err = Key(filepath.Join(dir, "absent.yaml"), cfg)
	assert.Error(t, err)
}
