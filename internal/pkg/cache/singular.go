package cache

import (
	"reflect"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("cache: not found")

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

type Singular[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	key string

	c *cache.Cache
}

func (c *Singular[T]) Get(dest *T) error {
	result, ok := c.c.Get(c.key)
	if !ok {
		return ErrNotFound
	}
	// copy value to dest
	var r reflect.Value
	if reflect.ValueOf(result).Kind() == reflect.Ptr {
		r = reflect.ValueOf(result).Elem()
	} else {
		r = reflect.ValueOf(result)
	}
	reflect.ValueOf(dest).Elem().Set(r)
	return nil
}

func (c *Singular[T]) Set(value T, expire time.Duration) error {
	c.c.Set(c.key, value, expire)
	return nil
}

// MutexGetSet gets value from cache and writes to dest, or if the key does
// not exist, executes valueFunc serially, sets its result to cache and writes
// it to dest. The boolean return reports whether the value was calculated.
func (c *Singular[T]) MutexGetSet(dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error) {
	if err := c.Get(dest); err == nil {
		return false, nil
	}

	c.m.Lock()
	defer c.m.Unlock()

	// check again in case other goroutine has already set the value
	if err := c.Get(dest); err == nil {
		return false, nil
	}

	value, err := valueFunc()
	if err != nil {
		return true, err
	}
	if err := c.Set(value, expire); err != nil {
		return true, err
	}
	*dest = value
	return true, nil
}

func (c *Singular[T]) Delete() {
	c.c.Delete(c.key)
}

func (c *Singular[T]) Flush() error {
	c.c.Flush()
	return nil
}
