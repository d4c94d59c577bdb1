package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wms-api/internal/auth"
	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFixedClock(t *testing.T) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.FixedZone("X", 3600)) }
	t.Cleanup(func() { Now = prev })
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	withFixedClock(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	rc := auth.NewRequestContext("req-9")
	require.NoError(t, rc.Bind(auth.Identity{UserID: "U1", TenantID: "T1"}))
	auth.Attach(c, rc)

	require.NoError(t, SuccessWithMeta(c, http.StatusOK, []string{"a"}, map[string]any{"count": 1, "requestId": "spoofed"}))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{"a"}, body["data"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, "req-9", meta["requestId"])
	assert.Equal(t, "T1", meta["tenantId"])
	assert.Equal(t, "2024-05-06T06:08:09.123Z", meta["timestamp"])
	assert.Equal(t, float64(1), meta["count"])
}

func TestErrorEnvelopeWithoutTenant(t *testing.T) {
	withFixedClock(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	auth.Attach(c, auth.NewRequestContext("req-1"))

	appErr := apperrors.Forbidden("Insufficient permissions").WithDetails(map[string]any{"missing": []string{"trace:read"}})
	require.NoError(t, Error(c, appErr))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")

	errBody := body["error"].(map[string]any)
	assert.Equal(t, apperrors.CodeForbidden, errBody["code"])
	assert.Equal(t, "Insufficient permissions", errBody["message"])
	assert.Equal(t, map[string]any{"missing": []any{"trace:read"}}, errBody["details"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, "req-1", meta["requestId"])
	assert.NotContains(t, meta, "tenantId")
}

func TestMetaFallsBackToResponseHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "hdr-1")

	meta := Meta(c, map[string]any{"tenantId": "spoofed"})
	assert.Equal(t, "hdr-1", meta["requestId"])
	assert.NotContains(t, meta, "tenantId")
}
