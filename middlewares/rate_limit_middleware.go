package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drexwrld/synapes-backend/utils"
)

// Clock is injected so tests drive refill without sleeping.
type Clock func() time.Time

// RateLimiter is a token bucket per key. Buckets refill continuously at
// ratePerWindow tokens per window, capped at ratePerWindow+burst.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	ratePerWindow int
	window        time.Duration
	burst         int
	now           Clock
}

type bucket struct {
	tokens     float64
	lastUpdate time.Time
}

func NewRateLimiter(ratePerWindow int, window time.Duration, burst int, now Clock) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets:       make(map[string]*bucket),
		ratePerWindow: ratePerWindow,
		window:        window,
		burst:         burst,
		now:           now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	max := float64(rl.ratePerWindow + rl.burst)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: max, lastUpdate: now}
		rl.buckets[key] = b
	}

	refill := now.Sub(b.lastUpdate).Seconds() * float64(rl.ratePerWindow) / rl.window.Seconds()
	if refill > 0 {
		b.tokens += refill
		if b.tokens > max {
			b.tokens = max
		}
		b.lastUpdate = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// RateLimit keys by client IP; it fronts the credential endpoints.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			utils.AbortFail(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
