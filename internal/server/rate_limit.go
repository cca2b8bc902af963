package server

import (
	"math"
	"sync"
	"time"
)

// This file implements admission control for the write endpoints (quiz
// and exercise attempts) using token bucket rate limiting.
//
// Rate limiting is applied at two levels:
//   - Global: overall instance-wide write rate limit
//   - IP: per source IP limit
//
// Both limits use the token bucket algorithm, which allows short bursts
// while enforcing an average rate over time.

// AttemptLimiter combines the global and per-IP rate limiters.
// A request must pass both levels to be allowed.
type AttemptLimiter struct {
	global *TokenBucketRateLimiter
	ip     *TokenBucketRateLimiter
}

// globalHeadroom is how many full-rate clients the global bucket admits
// before the instance starts shedding writes.
const globalHeadroom = 50

// NewAttemptLimiter creates a limiter that admits perMinute attempts per
// client IP on average, with a burst of a quarter minute's worth.
// perMinute <= 0 disables limiting.
func NewAttemptLimiter(perMinute int) *AttemptLimiter {
	if perMinute <= 0 {
		return &AttemptLimiter{}
	}

	ipRate := float64(perMinute) / 60.0
	ipBurst := max(perMinute/4, 3)

	return &AttemptLimiter{
		global: NewTokenBucketRateLimiter(TokenBucketConfig{
			Rate:            ipRate * globalHeadroom,
			Burst:           ipBurst * globalHeadroom,
			CleanupInterval: time.Minute,
			MaxEntries:      1,
		}),
		ip: NewTokenBucketRateLimiter(TokenBucketConfig{
			Rate:            ipRate,
			Burst:           ipBurst,
			CleanupInterval: time.Minute,
			MaxEntries:      4096,
		}),
	}
}

// Allow checks if a write from srcIP should be allowed.
// Returns true if the request passes both rate limit levels.
func (l *AttemptLimiter) Allow(srcIP string) bool {
	if l == nil {
		return true
	}
	// Check in order: global -> IP.
	// Fail fast: if the global limit is exceeded, don't track the IP.
	if !l.global.Allow("*") {
		return false
	}
	return l.ip.Allow(srcIP)
}

// TokenBucketConfig configures a token bucket rate limiter.
type TokenBucketConfig struct {
	Rate            float64       // Tokens replenished per second
	Burst           int           // Maximum tokens (burst capacity)
	CleanupInterval time.Duration // How often to clean up stale entries
	MaxEntries      int           // Maximum tracked keys (prevents memory exhaustion)
}

// TokenBucketRateLimiter implements the token bucket algorithm for rate limiting.
//
// Token bucket algorithm:
//   - Each key (IP, "*" for global) has a bucket of tokens
//   - Tokens are replenished at a constant rate (Rate tokens/second)
//   - Each request consumes 1 token
//   - Bucket has a maximum capacity (Burst)
//   - Request is allowed if tokens >= 1, denied otherwise
//
// This allows short bursts up to Burst requests, while limiting the
// long-term average to Rate requests per second.
type TokenBucketRateLimiter struct {
	rate            float64       // Tokens added per second
	burst           float64       // Maximum tokens in bucket
	cleanupInterval time.Duration // Time between stale entry cleanup
	maxEntries      int           // Maximum tracked keys

	mu          sync.Mutex           // Protects all fields below
	lastCleanup time.Time            // When cleanup was last run
	lastUpdate  map[string]time.Time // Last access time per key
	tokens      map[string]float64   // Current token count per key
}

// NewTokenBucketRateLimiter creates a new rate limiter with the given configuration.
func NewTokenBucketRateLimiter(cfg TokenBucketConfig) *TokenBucketRateLimiter {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1
	}
	ci := cfg.CleanupInterval
	if ci <= 0 {
		ci = 60 * time.Second
	}
	return &TokenBucketRateLimiter{
		rate:            cfg.Rate,
		burst:           float64(cfg.Burst),
		cleanupInterval: ci,
		maxEntries:      maxEntries,
		lastCleanup:     time.Now(),
		lastUpdate:      map[string]time.Time{},
		tokens:          map[string]float64{},
	}
}

// Allow checks if a request for the given key should be allowed.
// Returns true and consumes a token if allowed, false otherwise.
//
// Rate limiting is disabled if rate or burst is <= 0.
func (l *TokenBucketRateLimiter) Allow(key string) bool {
	// Allow disabling by setting rate/burst <= 0
	if l == nil || l.rate <= 0.0 || l.burst <= 0.0 {
		return true
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Periodic cleanup of stale entries
	if now.Sub(l.lastCleanup) > l.cleanupInterval {
		l.cleanupLocked(now)
	}

	// Check if this is a new key
	last, exists := l.lastUpdate[key]

	// Ensure we don't exceed max entries
	if !exists && len(l.lastUpdate) >= l.maxEntries {
		l.cleanupLocked(now)
		if len(l.lastUpdate) >= l.maxEntries {
			// Still at capacity - deny new entries
			return false
		}
		// Initialize new key with full bucket minus 1 token
		l.lastUpdate[key] = now
		l.tokens[key] = l.burst - 1.0
		return true
	}

	// Replenish tokens based on elapsed time
	elapsed := now.Sub(last).Seconds()
	l.lastUpdate[key] = now

	tokens := l.tokens[key]
	if elapsed > 0 {
		// Add tokens for elapsed time, capped at burst
		tokens = math.Min(l.burst, tokens+(elapsed*l.rate))
	}

	// Check if we have tokens available
	if tokens >= 1.0 {
		l.tokens[key] = tokens - 1.0
		return true
	}

	l.tokens[key] = tokens
	return false
}

// cleanupLocked removes entries that haven't been accessed recently.
// Must be called with l.mu held.
func (l *TokenBucketRateLimiter) cleanupLocked(now time.Time) {
	staleBefore := now.Add(-l.cleanupInterval)
	for k, last := range l.lastUpdate {
		if !last.After(staleBefore) {
			delete(l.lastUpdate, k)
			delete(l.tokens, k)
		}
	}
	l.lastCleanup = now
}
