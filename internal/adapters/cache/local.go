// Package cache implements the two-level Cache Tier: a bounded in-process
// LRU with TTL in front of an optional shared store.
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"trip_planner/internal/adapters/observability"
)

type entry struct {
	data    []byte
	expires time.Time
}

// Local is the per-instance tier. The LRU bounds size and applies the
// default TTL; entries written with a shorter TTL also carry their own expiry.
type Local struct {
	lru      *expirable.LRU[string, entry]
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

func NewLocal(capacity int, ttl time.Duration) *Local {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Local{
		lru:      expirable.NewLRU[string, entry](capacity, nil, ttl),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (l *Local) Get(key string) ([]byte, bool) {
	e, ok := l.lru.Get(key)
	if !ok {
		observability.ObserveCache("local", "miss")
		return nil, false
	}
	if l.now().After(e.expires) {
		l.lru.Remove(key)
		observability.ObserveCache("local", "miss")
		return nil, false
	}
	observability.ObserveCache("local", "hit")
	return e.data, true
}

func (l *Local) Set(key string, data []byte, ttl time.Duration) {
	if ttl <= 0 || ttl > l.ttl {
		ttl = l.ttl
	}
	l.lru.Add(key, entry{data: data, expires: l.now().Add(ttl)})
	observability.ObserveCache("local", "set")
}

// Clear drops entries whose key starts with any of prefixes, or everything
// when no prefix is given.
func (l *Local) Clear(prefixes ...string) int {
	if len(prefixes) == 0 {
		n := l.lru.Len()
		l.lru.Purge()
		return n
	}
	n := 0
	for _, k := range l.lru.Keys() {
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				if l.lru.Remove(k) {
					n++
				}
				break
			}
		}
	}
	return n
}

func (l *Local) Len() int           { return l.lru.Len() }
func (l *Local) Capacity() int      { return l.capacity }
func (l *Local) TTL() time.Duration { return l.ttl }
