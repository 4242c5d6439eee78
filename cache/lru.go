// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU a typed LRU cache extends golang-lru, counting hits and misses.
type LRU[K comparable, V any] struct {
	cache     *lru.Cache
	hit, miss atomic.Int64
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: c}, nil
}

// Get looks up a key's value from the cache.
func (l *LRU[K, V]) Get(key K) (value V, ok bool) {
	v, ok := l.cache.Get(key)
	if !ok {
		l.miss.Add(1)
		return value, false
	}
	l.hit.Add(1)
	return v.(V), true
}

// Add adds a value to the cache.
func (l *LRU[K, V]) Add(key K, value V) {
	l.cache.Add(key, value)
}

// Remove removes the provided key from the cache.
func (l *LRU[K, V]) Remove(key K) {
	l.cache.Remove(key)
}

// Len returns the number of items in the cache.
func (l *LRU[K, V]) Len() int {
	return l.cache.Len()
}

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU[K, V]) GetOrLoad(key K, loader func(K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		return v, err
	}
	l.cache.Add(key, v)
	return v, nil
}

// Stats returns the number of hits and misses.
func (l *LRU[K, V]) Stats() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}
