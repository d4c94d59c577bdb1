// Package response renders the JSON envelope every endpoint returns.
package response

import (
	"time"

	"wms-api/internal/auth"
	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	metaRequestID = "requestId"
	metaTenantID  = "tenantId"
	metaTimestamp = "timestamp"

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Now is the clock used for meta timestamps.
var Now = time.Now

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type successEnvelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta"`
}

type errorEnvelope struct {
	Success bool           `json:"success"`
	Error   ErrorBody      `json:"error"`
	Meta    map[string]any `json:"meta"`
}

// Success writes data under the success envelope.
func Success(c echo.Context, status int, data any) error {
	return SuccessWithMeta(c, status, data, nil)
}

// SuccessWithMeta adds extra keys to meta. Extra keys never replace
// requestId, tenantId or timestamp.
func SuccessWithMeta(c echo.Context, status int, data any, extra map[string]any) error {
	return c.JSON(status, successEnvelope{
		Success: true,
		Data:    data,
		Meta:    Meta(c, extra),
	})
}

// Error writes appErr under the failure envelope using its status.
func Error(c echo.Context, appErr *apperrors.AppError) error {
	return c.JSON(appErr.StatusCode, errorEnvelope{
		Success: false,
		Error: ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Meta: Meta(c, nil),
	})
}

func Meta(c echo.Context, extra map[string]any) map[string]any {
	meta := make(map[string]any, len(extra)+3)
	for k, v := range extra {
		meta[k] = v
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if rc, ok := auth.FromContext(c); ok {
		requestID = rc.RequestID
		if rc.TenantID != "" {
			meta[metaTenantID] = rc.TenantID
		} else {
			delete(meta, metaTenantID)
		}
	} else {
		delete(meta, metaTenantID)
	}

	meta[metaRequestID] = requestID
	meta[metaTimestamp] = Now().UTC().Format(timestampLayout)
	return meta
}
