package handler

import (
	"github.com/labstack/echo/v4"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Me echoes the resolved caller.
func (h *SessionHandler) Me(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}
	return respondOK(c, rc)
}

type AdminHandler struct {
	metrics MetricsSnapshotter
}

func NewAdminHandler(metrics MetricsSnapshotter) *AdminHandler {
	return &AdminHandler{metrics: metrics}
}

func (h *AdminHandler) Metrics(c echo.Context) error {
	return respondOK(c, h.metrics.Snapshot())
}
