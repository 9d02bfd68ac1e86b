package middlewares

import (
	"net/http"
	"sync"
	"time"

	"coffee-shop/internal/api/models"

	"github.com/gin-gonic/gin"
)

type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
	rate     int
	cleanup  time.Duration
}

type visitor struct {
	lastSeen time.Time
	count    int
	window   time.Time
}

// NewRateLimiter creates a new per-IP rate limiter allowing rate requests
// per minute
func NewRateLimiter(rate int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		cleanup:  time.Minute * 10,
	}

	go rl.cleanupExpiredVisitors()
	return rl
}

// RateLimit middleware implements rate limiting
func RateLimit(rate int) gin.HandlerFunc {
	limiter := NewRateLimiter(rate)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, models.NewErrorWithMessage(
				http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	v, exists := rl.visitors[ip]

	if !exists {
		rl.visitors[ip] = &visitor{lastSeen: now, count: 1, window: now}
		return true
	}

	v.lastSeen = now

	// Reset counter if window has passed
	if now.Sub(v.window) >= time.Minute {
		v.count = 1
		v.window = now
		return true
	}

	if v.count >= rl.rate {
		return false
	}

	v.count++
	return true
}

func (rl *RateLimiter) cleanupExpiredVisitors() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.cleanup {
				delete(rl.visitors, ip)
			}
		}
		rl.mutex.Unlock()
	}
}
