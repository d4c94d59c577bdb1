package handler

import (
	"net/http"

	"wms-api/internal/http/response"

	"github.com/labstack/echo/v4"
)

func respondList[T any](c echo.Context, items []T, limit int) error {
	return response.SuccessWithMeta(c, http.StatusOK, items, map[string]any{
		"count": len(items),
		"limit": limit,
	})
}

func respondCreated(c echo.Context, data any) error {
	return response.Success(c, http.StatusCreated, data)
}

func respondOK(c echo.Context, data any) error {
	return response.Success(c, http.StatusOK, data)
}
