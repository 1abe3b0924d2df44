package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetSet(t *testing.T) {
	t.Parallel()

	c := NewSet[string]("test")

	var dest string
	assert.ErrorIs(t, c.Get("k", &dest), ErrNotFound)

	require.NoError(t, c.Set("k", "v", time.Minute))
	require.NoError(t, c.Get("k", &dest))
	assert.Equal(t, "v", dest)

	c.Delete("k")
	assert.ErrorIs(t, c.Get("k", &dest), ErrNotFound)
}

func TestSetMutexGetSetCalculatesOnce(t *testing.T) {
	t.Parallel()

	c := NewSet[string]("test")
	var calls int64

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var dest string
			_, err := c.MutexGetSet("k", &dest, func() (string, error) {
				atomic.AddInt64(&calls, 1)
				return "v", nil
			}, time.Minute)
			assert.NoError(t, err)
			assert.Equal(t, "v", dest)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestSetPrefixIsolation(t *testing.T) {
	t.Parallel()

	a := NewSet[int]("a")
	b := NewSet[int]("b")

	require.NoError(t, a.Set("k", 1, time.Minute))
	var dest int
	assert.ErrorIs(t, b.Get("k", &dest), ErrNotFound)
}
