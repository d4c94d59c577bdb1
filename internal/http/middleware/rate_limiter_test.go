package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestRateLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	rl := NewRateLimiter(time.Second, 2, WithClock(clock.Now))

	first := rl.Allow("test-key")
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	assert.True(t, rl.Allow("test-key").Allowed)

	third := rl.Allow("test-key")
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)
	assert.Equal(t, time.Second, third.ResetIn)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	clock := newFakeClock()
	rl := NewRateLimiter(time.Second, 2, WithClock(clock.Now))

	rl.Allow("k")
	clock.Advance(400 * time.Millisecond)
	rl.Allow("k")
	assert.False(t, rl.Allow("k").Allowed)

	// The window is anchored at the first request, not the last.
	clock.Advance(600 * time.Millisecond)
	d := rl.Allow("k")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1)

	assert.True(t, rl.Allow("key1").Allowed)
	assert.True(t, rl.Allow("key2").Allowed)

	assert.False(t, rl.Allow("key1").Allowed)
	assert.False(t, rl.Allow("key2").Allowed)
}

func TestRateLimiter_SweepsExpiredWindows(t *testing.T) {
	clock := newFakeClock()
	rl := NewRateLimiter(time.Second, 5, WithClock(clock.Now))

	rl.Allow("a")
	rl.Allow("b")
	clock.Advance(2 * time.Second)
	rl.Allow("c")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.counters, 1)
	assert.Contains(t, rl.counters, "c")
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	clock := newFakeClock()
	rl := NewRateLimiter(time.Second, 2, WithClock(clock.Now))

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	mw := rl.Middleware()

	serve := func() (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:4567"
		rec := httptest.NewRecorder()
		return rec, mw(handler)(e.NewContext(req, rec))
	}

	for i := 0; i < 2; i++ {
		rec, err := serve()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(headerRateLimitLimit))
		assert.Equal(t, "1", rec.Header().Get(headerRateLimitReset))
	}

	rec, err := serve()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusTooManyRequests, appErr.StatusCode)
	assert.Equal(t, apperrors.CodeRateLimited, appErr.Code)
	assert.Equal(t, "0", rec.Header().Get(headerRateLimitRemaining))
	assert.Equal(t, "1", rec.Header().Get(headerRetryAfter))

	clock.Advance(time.Second)
	rec, err = serve()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
