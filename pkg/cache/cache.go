// Package cache provides a small in-process LRU with per-entry TTL.
// The bridge uses it to keep signed payment URLs, so a duplicate
// submission of an identical payload does not re-hit the gateway's
// signing endpoint.
package cache

import (
	"time"
)

type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V, ttl time.Duration)
	Len() int
	Capacity() int
	Purge()
	StartCleanup(interval time.Duration)
	StopCleanup()
}
