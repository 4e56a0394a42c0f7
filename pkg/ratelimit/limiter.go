package ratelimit

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	defaultMaxKeys = 1000
	defaultTTL     = 5 * time.Minute
)

// Limiter is a token bucket per key. Idle keys are forgotten after a TTL.
type Limiter[K comparable] struct {
	limiters *expirable.LRU[K, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// New allows requestsPerMin per key with a burst of a tenth of that (at least 1).
// A non-positive requestsPerMin disables limiting.
func New[K comparable](requestsPerMin int) *Limiter[K] {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	l := &Limiter[K]{
		limiters: expirable.NewLRU[K, *rate.Limiter](defaultMaxKeys, nil, defaultTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
	if requestsPerMin <= 0 {
		l.rate = rate.Inf
	}
	return l
}

// Allow reports whether one more event for key fits in its bucket. A nil
// Limiter allows everything.
func (l *Limiter[K]) Allow(key K) bool {
	if l == nil {
		return true
	}
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}
