package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularGetSet(t *testing.T) {
	t.Parallel()

	c := NewSingular[[]string]("voices")

	var dest []string
	assert.ErrorIs(t, c.Get(&dest), ErrNotFound)

	require.NoError(t, c.Set([]string{"a", "b"}, time.Minute))
	require.NoError(t, c.Get(&dest))
	assert.Equal(t, []string{"a", "b"}, dest)

	c.Delete()
	assert.ErrorIs(t, c.Get(&dest), ErrNotFound)
}

func TestSingularMutexGetSet(t *testing.T) {
	t.Parallel()

	c := NewSingular[int]("count")

	var dest int
	calculated, err := c.MutexGetSet(&dest, func() (int, error) {
		return 42, nil
	}, time.Minute)
	require.NoError(t, err)
	assert.True(t, calculated)
	assert.Equal(t, 42, dest)

	calculated, err = c.MutexGetSet(&dest, func() (int, error) {
		return 0, nil
	}, time.Minute)
	require.NoError(t, err)
	assert.False(t, calculated)
	assert.Equal(t, 42, dest)
}
