package http

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"wms-api/internal/http/middleware"
	"wms-api/internal/http/response"
	apperrors "wms-api/pkg/errors"
	"wms-api/pkg/logger"
	"wms-api/pkg/metrics"

	"github.com/labstack/echo/v4"
)

const (
	msgInternalServerError = "Internal server error"
	msgRouteNotFound       = "Route not found"
	msgValidationFailed    = "Request validation failed"
)

var frameworkCodes = map[int]string{
	http.StatusBadRequest:            apperrors.CodeBadRequest,
	http.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	http.StatusUnsupportedMediaType:  "UNSUPPORTED_MEDIA_TYPE",
}

// CustomHTTPErrorHandler renders every error through the envelope. Client
// errors keep their message; anything unclassified becomes a 500 whose
// text is only logged.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := translateError(err)
	c.Set(metrics.ContextKeyErrorCode, appErr.Code)

	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = "unknown"
	}
	logMsg := logger.SanitizeLogMessage(err.Error())
	fields := errorLogFields(c, appErr)

	if appErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("request_id=%s status=%d code=%s %s error=%s", requestID, appErr.StatusCode, appErr.Code, fields, logMsg)
	} else {
		c.Logger().Warnf("request_id=%s status=%d code=%s %s error=%s", requestID, appErr.StatusCode, appErr.Code, fields, logMsg)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(appErr.StatusCode)
	} else {
		err = response.Error(c, appErr)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

func translateError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperrors.CodeInternalServer {
			return apperrors.InternalServer(msgInternalServerError, err)
		}
		return appErr
	}

	if details, ok := validationDetails(err); ok {
		return apperrors.Validation(msgValidationFailed, details)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.Code == http.StatusNotFound, httpErr.Code == http.StatusMethodNotAllowed:
			return apperrors.NotFound(msgRouteNotFound)
		case httpErr.Code == http.StatusTooManyRequests:
			return apperrors.RateLimited(http.StatusText(httpErr.Code))
		case httpErr.Code >= http.StatusBadRequest && httpErr.Code < http.StatusInternalServerError:
			code, ok := frameworkCodes[httpErr.Code]
			if !ok {
				code = apperrors.CodeBadRequest
			}
			return apperrors.HTTPStatus(httpErr.Code, code)
		}
	}

	return apperrors.InternalServer(msgInternalServerError, err)
}

// errorLogFields renders the request line and any map-shaped error details as
// sorted key=value pairs with credential-like keys redacted.
func errorLogFields(c echo.Context, appErr *apperrors.AppError) string {
	fields := map[string]any{
		"method": c.Request().Method,
		"path":   c.Request().URL.Path,
	}
	if details, ok := appErr.Details.(map[string]any); ok {
		for k, v := range details {
			fields["details."+k] = v
		}
	}
	fields = logger.SanitizeMap(fields)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return logger.SanitizeLogMessage(strings.Join(pairs, " "))
}
