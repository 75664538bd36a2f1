// middleware/rate_limiter.go
package middleware

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/electoral-demo/voterreg_backend/models"
)

const limitWindow = 15 * time.Minute

// RateLimiter enforces fixed per-client request windows: 5 OTP
// issuances and 10 general requests per 15 minutes. When Redis is
// available the windows are INCR+EXPIRE counters shared across
// replicas; otherwise each scope falls back to per-IP token buckets
// held in memory.
type RateLimiter struct {
	redis *redis.Client

	mu      sync.Mutex
	local   map[string]*rate.Limiter
	lastHit map[string]time.Time
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	limiter := &RateLimiter{
		redis:   redisClient,
		local:   make(map[string]*rate.Limiter),
		lastHit: make(map[string]time.Time),
	}

	go limiter.cleanupIdleLimiters()

	return limiter
}

// OTPLimiter guards /api/otp/send: 5 issuances per window per client.
func (r *RateLimiter) OTPLimiter() echo.MiddlewareFunc {
	return r.limit("otp", 5, "Too many OTP requests, please try again after 15 minutes")
}

// GeneralLimiter guards the remaining write endpoints: 10 requests per
// window per client.
func (r *RateLimiter) GeneralLimiter() echo.MiddlewareFunc {
	return r.limit("general", 10, "Too many requests, please try again after 15 minutes")
}

func (r *RateLimiter) limit(scope string, max int, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !r.allow(c.Request().Context(), scope, c.RealIP(), max) {
				return c.JSON(429, models.Response{
					Success: false,
					Message: message,
				})
			}
			return next(c)
		}
	}
}

func (r *RateLimiter) allow(ctx context.Context, scope, ip string, max int) bool {
	if r.redis != nil {
		if allowed, err := r.allowRedis(ctx, scope, ip, max); err == nil {
			return allowed
		} else {
			log.Printf("rate limiter: redis error, falling back to in-memory: %v", err)
		}
	}
	return r.allowLocal(scope, ip, max)
}

// allowRedis counts requests in a fixed window keyed by scope and ip.
func (r *RateLimiter) allowRedis(ctx context.Context, scope, ip string, max int) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, ip)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		r.redis.Expire(ctx, key, limitWindow)
	}
	return count <= int64(max), nil
}

func (r *RateLimiter) allowLocal(scope, ip string, max int) bool {
	key := scope + ":" + ip

	r.mu.Lock()
	limiter, exists := r.local[key]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(limitWindow/time.Duration(max)), max)
		r.local[key] = limiter
	}
	r.lastHit[key] = time.Now()
	r.mu.Unlock()

	return limiter.Allow()
}

func (r *RateLimiter) cleanupIdleLimiters() {
	for {
		time.Sleep(1 * time.Hour)
		r.mu.Lock()
		cutoff := time.Now().Add(-2 * limitWindow)
		for key, last := range r.lastHit {
			if last.Before(cutoff) {
				delete(r.lastHit, key)
				delete(r.local, key)
			}
		}
		r.mu.Unlock()
	}
}
