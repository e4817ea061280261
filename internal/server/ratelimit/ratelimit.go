// Package ratelimit provides per-client request throttling for the HTTP
// API using a token bucket per client and endpoint tier.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is one token bucket. Tokens refill continuously at refillRate
// per second up to capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64
	tokens     float64
	updatedAt  time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		updatedAt:  time.Now(),
	}
}

// refillLocked advances the bucket to now. Callers hold mu.
func (b *bucket) refillLocked(now time.Time) {
	b.tokens += now.Sub(b.updatedAt).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.updatedAt = now
}

// take consumes one token if available and reports the remaining count
// plus the time at which the bucket is full again.
func (b *bucket) take() (ok bool, remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	remaining = int(b.tokens)
	resetAt = now
	if deficit := b.capacity - b.tokens; deficit > 0 {
		resetAt = now.Add(time.Duration(deficit / b.refillRate * float64(time.Second)))
	}
	return ok, remaining, resetAt
}

// Info describes the rate limit state returned with every decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// entry pairs a bucket with its last access time so idle buckets can be
// evicted.
type entry struct {
	bucket   *bucket
	lastSeen time.Time
}

// Limiter throttles requests per client and endpoint tier.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  *Config
	ticker  *time.Ticker
	done    chan struct{}
}

// idleEviction is how long a bucket may go unused before cleanup drops it.
const idleEviction = time.Hour

// NewLimiter creates a limiter. A nil config enables limiting with the
// global defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		entries: make(map[string]*entry),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.runCleanup()
	}

	return l
}

// Allow decides whether a request from clientID to the given endpoint
// may proceed.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	tier := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if tier == nil {
		tier = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if tier.Limit <= 0 {
		// Unlimited tier, e.g. the health check.
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	b := l.bucketFor(key, tier)

	ok, remaining, resetAt := b.take()

	info := Info{
		Allowed:   ok,
		Limit:     tier.Limit,
		Remaining: remaining,
		ResetTime: resetAt,
	}
	if !ok {
		if wait := time.Until(resetAt); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return ok, info
}

// bucketFor returns the bucket for key, creating it from the tier's
// limit and burst on first use, and stamps the access time.
func (l *Limiter) bucketFor(key string, tier *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		capacity := tier.Burst
		if capacity <= 0 {
			capacity = tier.Limit
		}
		e = &entry{bucket: newBucket(capacity, float64(tier.Limit)/tier.Window.Seconds())}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.bucket
}

func (l *Limiter) runCleanup() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle()
		case <-l.done:
			return
		}
	}
}

// evictIdle drops buckets that have not been touched within the
// eviction window.
func (l *Limiter) evictIdle() {
	cutoff := time.Now().Add(-idleEviction)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
