// Package ratelimit provides per-client token bucket rate limiting for the scoring API.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// RequestsPerMinute is the steady refill rate per client.
	RequestsPerMinute int
	// Burst is the bucket capacity; 0 means RequestsPerMinute.
	Burst int
	// IdleTTL drops buckets that have not been used for this long.
	IdleTTL time.Duration
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// tokenBucket refills continuously at refillRate tokens per second up to capacity.
type tokenBucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
		tb.lastRefill = now
	}
}

// take consumes one token if available and reports how long until the next one.
func (tb *tokenBucket) take(now time.Time) (bool, time.Duration) {
	tb.refill(now)
	if tb.tokens >= 1 {
		tb.tokens--
		return true, 0
	}
	missing := 1 - tb.tokens
	return false, time.Duration(missing / tb.refillRate * float64(time.Second))
}

// Limiter manages one token bucket per client key.
type Limiter struct {
	mu       sync.Mutex
	config   Config
	buckets  map[string]*tokenBucket
	now      func() time.Time
	lastScan time.Time
}

// NewLimiter creates a limiter. A nil clock uses time.Now.
func NewLimiter(cfg Config, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Hour
	}
	return &Limiter{
		config:   cfg,
		buckets:  make(map[string]*tokenBucket),
		now:      now,
		lastScan: now(),
	}
}

// Allow checks if a request from the given client is allowed.
func (l *Limiter) Allow(clientKey string) Info {
	if !l.config.Enabled || l.config.RequestsPerMinute <= 0 {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)

	bucket, ok := l.buckets[clientKey]
	if !ok {
		bucket = &tokenBucket{
			capacity:   float64(l.config.Burst),
			refillRate: float64(l.config.RequestsPerMinute) / 60,
			tokens:     float64(l.config.Burst),
			lastRefill: now,
		}
		l.buckets[clientKey] = bucket
	}

	allowed, retryAfter := bucket.take(now)
	return Info{
		Allowed:    allowed,
		Limit:      l.config.RequestsPerMinute,
		Remaining:  int(bucket.tokens),
		RetryAfter: retryAfter,
	}
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// evictIdle drops buckets unused for IdleTTL. Scans run at most once per IdleTTL.
// Caller holds l.mu.
func (l *Limiter) evictIdle(now time.Time) {
	if now.Sub(l.lastScan) < l.config.IdleTTL {
		return
	}
	l.lastScan = now
	cutoff := now.Add(-l.config.IdleTTL)
	for key, bucket := range l.buckets {
		if bucket.lastRefill.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
