package collection

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// ViewCache memoizes views derived from a store, keyed on (store version, query).
type ViewCache[V any] struct {
	lru *lru.Cache[string, V]
}

func NewViewCache[V any](size int) (*ViewCache[V], error) {
	if size <= 0 {
		size = 1
	}
	c, err := lru.New[string, V](size)
	if err != nil {
		return nil, errors.Wrap(err, "creating lru cache")
	}
	return &ViewCache[V]{lru: c}, nil
}

func cacheKey(version uint64, q Query) string {
	return strconv.FormatUint(version, 10) + "\x01" + q.Key()
}

// Get returns the cached result; callers must not mutate it.
func (c *ViewCache[V]) Get(version uint64, q Query) (V, bool) {
	return c.lru.Get(cacheKey(version, q))
}

func (c *ViewCache[V]) Add(version uint64, q Query, v V) {
	c.lru.Add(cacheKey(version, q), v)
}

func (c *ViewCache[V]) Purge() {
	c.lru.Purge()
}
