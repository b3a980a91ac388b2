package service

import (
	"sync"
	"time"
)

// staleAfter is how long an idle bucket is kept before cleanup drops it.
const staleAfter = 10 * time.Minute

// TokenBucket is an in-memory per-key rate limiter used to throttle
// credential endpoints. It is safe for concurrent use.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens added per second
	capacity float64 // maximum tokens
	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a rate limiter that allows up to capacity tokens per key,
// refilling at the given rate (tokens per second). A background goroutine
// removes stale buckets until Close is called.
func NewTokenBucket(rate, capacity float64) *TokenBucket {
	tb := &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		stop:     make(chan struct{}),
	}
	go tb.cleanup(5 * time.Minute)
	return tb
}

// Allow reports whether the given key may proceed, consuming one token if so.
func (tb *TokenBucket) Allow(key string) bool {
	return tb.allowAt(key, time.Now())
}

func (tb *TokenBucket) allowAt(key string, now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, last: now}
		tb.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*tb.rate, tb.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (tb *TokenBucket) Close() {
	tb.stopOnce.Do(func() { close(tb.stop) })
}

func (tb *TokenBucket) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-tb.stop:
			return
		case now := <-ticker.C:
			tb.evict(now)
		}
	}
}

func (tb *TokenBucket) evict(now time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	cutoff := now.Add(-staleAfter)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}
