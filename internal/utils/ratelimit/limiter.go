// Package ratelimit provides per-client request throttling for the public
// notice endpoints. It implements the token bucket algorithm with a
// configurable rate and burst.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket for one client. Tokens are added at a fixed rate
// and every allowed request consumes one.
type Limiter struct {
	// tokens is the current number of tokens in the bucket
	tokens float64

	// lastTime is the last time tokens were added to the bucket
	lastTime time.Time

	// rate is the token refill rate (tokens per second)
	rate float64

	// capacity is the maximum number of tokens the bucket can hold
	capacity float64

	mu sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// NewLimiter creates a full bucket with the given rate and burst capacity.
func NewLimiter(rate Rate, now time.Time) *Limiter {
	return &Limiter{
		tokens:   float64(rate.Burst),
		lastTime: now,
		rate:     rate.RequestsPerSecond,
		capacity: float64(rate.Burst),
	}
}

// AllowAt reports whether a request arriving at now may proceed and consumes
// a token if so.
func (l *Limiter) AllowAt(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Refill for the time elapsed since the last request
	if elapsed := now.Sub(l.lastTime).Seconds(); elapsed > 0 {
		l.tokens += elapsed * l.rate
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
	}
	l.lastTime = now

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}

// idleSince reports whether the limiter has not been used since cutoff.
func (l *Limiter) idleSince(cutoff time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastTime.Before(cutoff)
}
