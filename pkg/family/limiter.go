package family

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	custom   bool
	lastSeen time.Time
}

// RateLimiterStore throttles commands per child: child_id -> token bucket.
// A nil store allows everything.
type RateLimiterStore struct {
	limiters     map[string]*limiterEntry
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*limiterEntry),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(childID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limiters[childID]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.defaultRate, s.defaultBurst)}
		s.limiters[childID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (s *RateLimiterStore) Allow(childID string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(childID).Allow()
}

// SetLimiter overrides the default bucket for one child. Overrides survive
// Sweep.
func (s *RateLimiterStore) SetLimiter(childID string, childRate rate.Limit, childBurst int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[childID] = &limiterEntry{
		limiter:  rate.NewLimiter(childRate, childBurst),
		custom:   true,
		lastSeen: time.Now(),
	}
}

// Sweep drops default limiters not used for idle and returns how many were
// dropped.
func (s *RateLimiterStore) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	dropped := 0
	for childID, entry := range s.limiters {
		if !entry.custom && entry.lastSeen.Before(cutoff) {
			delete(s.limiters, childID)
			dropped++
		}
	}
	return dropped
}

func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
