package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key (client IP for login attempts).
type KeyedLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewKeyedLimiter allows burst events per key, refilled at one event every
// interval.
func NewKeyedLimiter(burst int, interval time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(interval),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow consumes a token for key. When none is left it reports how long the
// caller should wait before retrying.
func (kl *KeyedLimiter) Allow(key string) (bool, time.Duration) {
	kl.mutex.Lock()
	defer kl.mutex.Unlock()

	now := kl.now()
	v, exists := kl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.visitors[key] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops keys idle for longer than maxIdle.
func (kl *KeyedLimiter) Cleanup(maxIdle time.Duration) int {
	kl.mutex.Lock()
	defer kl.mutex.Unlock()

	now := kl.now()
	removed := 0
	for key, v := range kl.visitors {
		if now.Sub(v.lastSeen) > maxIdle {
			delete(kl.visitors, key)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine runs Cleanup on a ticker until stop is closed.
func (kl *KeyedLimiter) StartCleanupRoutine(every, maxIdle time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				kl.Cleanup(maxIdle)
			case <-stop:
				return
			}
		}
	}()
}
