package scoring

import (
	"sync"
	"sync/atomic"

	"github.com/jonathan/ats-scorer/internal/types"
)

// CacheStats reports consistency cache activity.
type CacheStats struct {
	Entries int `json:"entries"`
	// Hits counts lookups answered from a stored result.
	Hits int `json:"hits"`
	// Misses counts lookups that found no stored result, including callers that
	// waited on a concurrent computation of the same key.
	Misses int `json:"misses"`
	// Computations counts scorer runs. Each key computes once.
	Computations int `json:"computations"`
}

// inflight is a computation other callers can wait on.
type inflight struct {
	done   chan struct{}
	result *types.ScoreResult
}

// consistencyCache stores results forever, keyed by fingerprint and industry.
// Concurrent misses for one key share a single computation.
type consistencyCache struct {
	mu      sync.RWMutex
	entries map[string]*types.ScoreResult
	pending map[string]*inflight

	hits         atomic.Int64
	misses       atomic.Int64
	computations atomic.Int64
}

func newConsistencyCache() *consistencyCache {
	return &consistencyCache{
		entries: make(map[string]*types.ScoreResult),
		pending: make(map[string]*inflight),
	}
}

// getOrCompute returns the cached result for key or runs compute once to fill it.
// hit is true when this caller did not run compute itself.
func (c *consistencyCache) getOrCompute(key string, compute func() *types.ScoreResult) (result *types.ScoreResult, hit bool) {
	c.mu.RLock()
	r, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return r, true
	}

	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.hits.Add(1)
		return r, true
	}
	c.misses.Add(1)
	if call, ok := c.pending[key]; ok {
		c.mu.Unlock()
		<-call.done
		return call.result, true
	}
	call := &inflight{done: make(chan struct{})}
	c.pending[key] = call
	c.mu.Unlock()

	c.computations.Add(1)
	call.result = compute()

	c.mu.Lock()
	c.entries[key] = call.result
	delete(c.pending, key)
	c.mu.Unlock()
	close(call.done)

	return call.result, false
}

func (c *consistencyCache) stats() CacheStats {
	c.mu.RLock()
	entries := len(c.entries)
	c.mu.RUnlock()
	return CacheStats{
		Entries:      entries,
		Hits:         int(c.hits.Load()),
		Misses:       int(c.misses.Load()),
		Computations: int(c.computations.Load()),
	}
}
