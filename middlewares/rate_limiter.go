package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter is a sliding-window per-IP limiter for the whole API.
type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(ratePerInterval int, intervalSeconds int) *RateLimiter {
	return &RateLimiter{
		rate:     ratePerInterval,
		interval: time.Duration(intervalSeconds) * time.Second,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		now := time.Now()
		cutoff := now.Add(-rl.interval)

		valid := rl.ips[ip][:0]
		for _, t := range rl.ips[ip] {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}

		if len(valid) >= rl.rate {
			rl.ips[ip] = valid
			rl.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			c.Abort()
			return
		}

		rl.ips[ip] = append(valid, now)
		rl.mu.Unlock()

		c.Next()
	}
}

// NewStrictRateLimiter guards login/register and the public enquiry form.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Minute/10), 10)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
