package family

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("child1")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	if limiter.Limit() != 1 {
		t.Errorf("expected limit 1, got %v", limiter.Limit())
	}
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("child2", 5, 10)
	limiter := store.GetLimiter("child2")

	if limiter.Limit() != 5 {
		t.Errorf("expected limit 5, got %v", limiter.Limit())
	}
	if limiter.Burst() != 10 {
		t.Errorf("expected burst 10, got %v", limiter.Burst())
	}
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	childID := uuid.NewString()

	var wg sync.WaitGroup

	for n := 0; n < 100; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter := store.GetLimiter(childID)
			if limiter == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, store.Len())
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2) // 2 events/sec

	childID := uuid.NewString()

	if !store.Allow(childID) || !store.Allow(childID) {
		t.Fatal("expected first two calls to be allowed")
	}

	if store.Allow(childID) {
		t.Error("expected third call to be rate limited")
	}

	time.Sleep(600 * time.Millisecond)
	if !store.Allow(childID) {
		t.Error("expected one token to be available after refill")
	}
}

func TestRateLimiterStore_NilAllowsEverything(t *testing.T) {
	var store *RateLimiterStore
	for n := 0; n < 10; n++ {
		assert.True(t, store.Allow("anyone"))
	}
	store.SetLimiter("anyone", 1, 1)
}

func TestRateLimiterStore_Sweep(t *testing.T) {
	store := NewRateLimiterStore(1, 1)
	store.GetLimiter("idle")
	store.SetLimiter("custom", 3, 3)

	time.Sleep(20 * time.Millisecond)
	store.GetLimiter("busy")

	assert.Equal(t, 1, store.Sweep(10*time.Millisecond))
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 0, store.Sweep(time.Hour))
}
