package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"wms-api/internal/auth"
	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20 // Keep parser bound aligned with global body limit.

	codeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"

	msgInvalidRequestBody = "Invalid request body"
	msgInvalidParameters  = "Invalid request parameters"
	msgCallerMissing      = "caller identity missing after authentication"
)

var binder = &echo.DefaultBinder{}

// bindStrictJSON decodes exactly one JSON object with no unknown fields.
func bindStrictJSON(c echo.Context, dst any) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return apperrors.HTTPStatus(http.StatusUnsupportedMediaType, codeUnsupportedMediaType)
	}

	body := io.LimitReader(c.Request().Body, maxStrictBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return apperrors.BadRequest(msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.BadRequest(msgInvalidRequestBody)
	}

	return nil
}

// bindBody binds path params and a strict JSON body into dst, then validates.
func bindBody(c echo.Context, dst any) error {
	if err := binder.BindPathParams(c, dst); err != nil {
		return apperrors.BadRequest(msgInvalidParameters)
	}
	if err := bindStrictJSON(c, dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

// bindQuery binds path and query params into dst, then validates.
func bindQuery(c echo.Context, dst any) error {
	if err := binder.BindPathParams(c, dst); err != nil {
		return apperrors.BadRequest(msgInvalidParameters)
	}
	if err := binder.BindQueryParams(c, dst); err != nil {
		return apperrors.BadRequest(msgInvalidParameters)
	}
	return c.Validate(dst)
}

// caller returns the authenticated request context. Routes behind the
// authenticator always have one.
func caller(c echo.Context) (*auth.RequestContext, error) {
	rc, ok := auth.FromContext(c)
	if !ok || !rc.Authenticated() {
		return nil, apperrors.InternalServer(msgCallerMissing, nil)
	}
	return rc, nil
}
