package cachemanager

import "time"

// ReadThroughCache computes missing values with fn and stores them.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	fn    func(input I) V
	ttl   time.Duration
}

// NewReadThroughCache wraps cache so Get falls back to fn on a miss.
func NewReadThroughCache[K ~string, V any, I any](cache CacheManager[K, V], fn func(input I) V, ttl time.Duration) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, ttl: ttl}
}

// Get returns the cached value for key, computing it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(key K, input I) V {
	if value, ok := r.cache.Get(key); ok {
		return value
	}
	value := r.fn(input)
	r.cache.Set(key, value, r.ttl)
	return value
}

// Flush drops every cached value.
func (r *ReadThroughCache[K, V, I]) Flush() {
	r.cache.Flush()
}
