package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wms-api/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRequestID(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	err := RequestID()(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c)
	require.NoError(t, err)
	return rec, c
}

func TestRequestIDReusesHeader(t *testing.T) {
	rec, c := runRequestID(t, "  abc-123 ")

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", GetRequestID(c))
}

func TestRequestIDGeneratesWhenBlank(t *testing.T) {
	for _, header := range []string{"", "   "} {
		rec, _ := runRequestID(t, header)

		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	}
}

func TestRequestIDInitializesContext(t *testing.T) {
	_, c := runRequestID(t, "req-7")

	rc, ok := auth.FromContext(c)
	require.True(t, ok)
	assert.Equal(t, "req-7", rc.RequestID)
	assert.False(t, rc.Authenticated())
	assert.Empty(t, rc.UserID)
	assert.Empty(t, rc.TenantID)
	assert.Equal(t, []string{}, rc.Roles)
	assert.Equal(t, []string{}, rc.Permissions)
}
