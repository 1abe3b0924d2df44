package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

func NewSet[T any](prefix string) *Set[T] {
	return &Set[T]{
		prefix: prefix + ":",
		c:      cache.New(cache.NoExpiration, time.Minute*10),
	}
}

// Set is a keyed in-process cache namespaced by a prefix.
type Set[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	prefix string

	c *cache.Cache
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

func (c *Set[T]) Get(key string, dest *T) error {
	result, ok := c.c.Get(c.key(key))
	if !ok {
		return ErrNotFound
	}
	*dest = result.(T)
	return nil
}

func (c *Set[T]) Set(key string, value T, expire time.Duration) error {
	c.c.Set(c.key(key), value, expire)
	return nil
}

// MutexGetSet gets value from cache and writes to dest, or if the key does
// not exist, executes valueFunc serially, sets its result to cache and writes
// it to dest. The boolean return reports whether the value was calculated.
func (c *Set[T]) MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error) {
	if err := c.Get(key, dest); err == nil {
		return false, nil
	}

	c.m.Lock()
	defer c.m.Unlock()

	if err := c.Get(key, dest); err == nil {
		return false, nil
	}

	value, err := valueFunc()
	if err != nil {
		return true, err
	}
	if err := c.Set(key, value, expire); err != nil {
		return true, err
	}
	*dest = value
	return true, nil
}

func (c *Set[T]) Delete(key string) {
	c.c.Delete(c.key(key))
}

func (c *Set[T]) Flush() error {
	c.c.Flush()
	return nil
}
