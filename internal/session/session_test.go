package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tinfer/internal/config"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	s := New(nil, nil)
	require.NotNil(t, s.Logger())
	assert.Equal(t, config.Default(), s.Config)
	assert.NotEqual(t, uuid.Nil, s.ID)
}

func TestNextInvariantIDConcurrent(t *testing.T) {
	t.Parallel()

	s := New(nil, nil)
	const workers, each = 8, 100

	var mu sync.Mutex
	seen := make(map[int]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < each; k++ {
				id := s.NextInvariantID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*each)
}

func TestMetricsArePerSession(t *testing.T) {
	t.Parallel()

	a, b := New(nil, nil), New(nil, nil)
	a.Metrics.Falsified.Add(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.Metrics.Falsified))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Metrics.Falsified))

	n, err := testutil.GatherAndCount(a.Metrics.Registry)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
