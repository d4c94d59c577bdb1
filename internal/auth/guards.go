package auth

import (
	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
)

// RequireRoles passes when the caller holds any of allowed, compared
// case-insensitively. No roles means no restriction.
func RequireRoles(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}

			rc, _ := FromContext(c)
			if !rc.HasAnyRole(allowed...) {
				return apperrors.Forbidden(msgInsufficientRole)
			}

			return next(c)
		}
	}
}

// RequirePermissions passes only when the caller holds every permission in
// required. Comparison is exact.
func RequirePermissions(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(required) == 0 {
				return next(c)
			}

			rc, _ := FromContext(c)
			if missing := rc.MissingPermissions(required...); len(missing) > 0 {
				return apperrors.Forbidden(msgInsufficientPermission).
					WithDetails(map[string]any{"missing": missing})
			}

			return next(c)
		}
	}
}
