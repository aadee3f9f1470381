package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

// limiterCache hands out one token bucket per client key.
type limiterCache struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache(rps float64, burst int) *limiterCache {
	return &limiterCache{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	if len(lc.limiters) >= maxTrackedClients {
		lc.limiters = make(map[string]*rate.Limiter)
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// rateLimitMiddleware limits each client IP to rps requests per second.
func rateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	cache := newLimiterCache(rps, burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !cache.get(ip).Allow() {
			slog.Warn("Rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please slow down."})
			return
		}

		c.Next()
	}
}
