package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	headerRateLimitLimit     = "RateLimit-Limit"
	headerRateLimitRemaining = "RateLimit-Remaining"
	headerRateLimitReset     = "RateLimit-Reset"
	headerRetryAfter         = "Retry-After"

	msgRateLimited = "Too many requests, please try again later"
)

type windowCounter struct {
	count int
	start time.Time
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// RateLimiter is a fixed-window counter per key. State is process-local.
type RateLimiter struct {
	window time.Duration
	limit  int
	now    func() time.Time

	mu        sync.Mutex
	counters  map[string]*windowCounter
	lastSweep time.Time
}

type RateLimiterOption func(*RateLimiter)

// WithClock overrides the limiter's time source.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.now = now
	}
}

// NewRateLimiter allows limit requests per key in each window.
func NewRateLimiter(window time.Duration, limit int, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		window:   window,
		limit:    limit,
		now:      time.Now,
		counters: make(map[string]*windowCounter),
	}
	for _, opt := range opts {
		opt(rl)
	}
	rl.lastSweep = rl.now()
	return rl
}

// Allow counts one request for key.
func (rl *RateLimiter) Allow(key string) Decision {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	wc, ok := rl.counters[key]
	if !ok || now.Sub(wc.start) >= rl.window {
		wc = &windowCounter{start: now}
		rl.counters[key] = wc
	}
	wc.count++

	return Decision{
		Allowed:   wc.count <= rl.limit,
		Limit:     rl.limit,
		Remaining: max(rl.limit-wc.count, 0),
		ResetIn:   wc.start.Add(rl.window).Sub(now),
	}
}

// sweep drops expired windows at most once per window. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for key, wc := range rl.counters {
		if now.Sub(wc.start) >= rl.window {
			delete(rl.counters, key)
		}
	}
	rl.lastSweep = now
}

// Middleware limits by client IP.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := rl.Allow("ip:" + c.RealIP())

			resetSeconds := strconv.Itoa(int(math.Ceil(d.ResetIn.Seconds())))
			h := c.Response().Header()
			h.Set(headerRateLimitLimit, strconv.Itoa(d.Limit))
			h.Set(headerRateLimitRemaining, strconv.Itoa(d.Remaining))
			h.Set(headerRateLimitReset, resetSeconds)

			if !d.Allowed {
				h.Set(headerRetryAfter, resetSeconds)
				return apperrors.RateLimited(msgRateLimited)
			}

			return next(c)
		}
	}
}
