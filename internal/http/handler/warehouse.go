package handler

import (
	"wms-api/internal/warehouse"

	"github.com/labstack/echo/v4"
)

type WarehouseHandler struct {
	gen WarehouseGenerator
}

func NewWarehouseHandler(gen WarehouseGenerator) *WarehouseHandler {
	return &WarehouseHandler{gen: gen}
}

func (h *WarehouseHandler) ListReceipts(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var q warehouse.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	return respondList(c, h.gen.ListReceipts(rc.TenantID, q), limitOf(q))
}

func (h *WarehouseHandler) CreateReceipt(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var in warehouse.ReceiptInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	return respondCreated(c, h.gen.CreateReceipt(rc.TenantID, rc.UserID, in))
}

func (h *WarehouseHandler) ListOrders(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var q warehouse.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	return respondList(c, h.gen.ListOrders(rc.TenantID, q), limitOf(q))
}

func (h *WarehouseHandler) ShipOrder(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var in warehouse.ShipmentInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	return respondCreated(c, h.gen.ShipOrder(rc.TenantID, rc.UserID, in))
}

func (h *WarehouseHandler) ListStock(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var q warehouse.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	return respondList(c, h.gen.ListStock(rc.TenantID, q), limitOf(q))
}

func (h *WarehouseHandler) CreateAdjustment(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var in warehouse.AdjustmentInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	return respondCreated(c, h.gen.CreateAdjustment(rc.TenantID, rc.UserID, in))
}

func (h *WarehouseHandler) CreatePutawayTask(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var in warehouse.PutawayInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	return respondCreated(c, h.gen.CreatePutawayTask(rc.TenantID, rc.UserID, in))
}

func (h *WarehouseHandler) ListReturns(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var q warehouse.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	return respondList(c, h.gen.ListReturns(rc.TenantID, q), limitOf(q))
}

func (h *WarehouseHandler) CreateReturn(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var in warehouse.ReturnInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	return respondCreated(c, h.gen.CreateReturn(rc.TenantID, rc.UserID, in))
}

func (h *WarehouseHandler) TraceLot(c echo.Context) error {
	rc, err := caller(c)
	if err != nil {
		return err
	}

	var q warehouse.TraceQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	events := h.gen.TraceLot(rc.TenantID, q.LotID)
	return respondList(c, events, len(events))
}

func limitOf(q warehouse.ListQuery) int {
	if q.Limit <= 0 {
		return warehouse.DefaultListLimit
	}
	return q.Limit
}
