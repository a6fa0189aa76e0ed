package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Store keeps one limiter per client and category.
type Store struct {
	limiters map[string]*Limiter
	rates    map[string]Rate
	fallback Rate
	idleTTL  time.Duration
	now      func() time.Time

	mu sync.Mutex
}

// NewStore creates a store whose categories default to fallback.
// Limiters unused for idleTTL are dropped by Cleanup.
func NewStore(fallback Rate, idleTTL time.Duration) *Store {
	return &Store{
		limiters: make(map[string]*Limiter),
		rates:    make(map[string]Rate),
		fallback: fallback,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// SetRate sets the rate for one category, e.g. "render".
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Allow reports whether clientID may make another request in category.
func (s *Store) Allow(clientID, category string) bool {
	now := s.now()
	return s.limiter(clientID, category, now).AllowAt(now)
}

func (s *Store) limiter(clientID, category string, now time.Time) *Limiter {
	key := category + "|" + clientID

	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.limiters[key]; ok {
		return l
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.fallback
	}
	l := NewLimiter(rate, now)
	s.limiters[key] = l
	return l
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Cleanup removes limiters that have been idle longer than the store's TTL
// and returns how many were removed.
func (s *Store) Cleanup() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, l := range s.limiters {
		if l.idleSince(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Idle rate limiters removed")
			}
		}
	}
}
