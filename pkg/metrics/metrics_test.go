package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsStatusesAndCodes(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		c.Set(ContextKeyErrorCode, "FORBIDDEN")
		_ = c.NoContent(http.StatusForbidden)
	}

	m := New()
	e.Use(m.Middleware())
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/denied", func(c echo.Context) error { return errors.New("denied") })

	for _, path := range []string{"/ok", "/ok", "/denied"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.Equal(t, int64(0), snap.ActiveRequests)
	assert.Equal(t, int64(2), snap.StatusCodes[http.StatusOK])
	assert.Equal(t, int64(1), snap.StatusCodes[http.StatusForbidden])
	assert.Equal(t, int64(1), snap.ErrorCodes["FORBIDDEN"])
	assert.Equal(t, int64(2), snap.EndpointCounts["GET /ok"])
	assert.InDelta(t, 33.3, snap.ErrorRate, 0.1)
}

func TestReset(t *testing.T) {
	e := echo.New()
	m := New()
	e.Use(m.Middleware())
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	m.Reset()

	snap := m.Snapshot()
	assert.Zero(t, snap.TotalRequests)
	assert.Empty(t, snap.EndpointCounts)
}
