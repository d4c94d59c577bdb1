package handler

import (
	"wms-api/internal/warehouse"
	"wms-api/pkg/metrics"
)

type InboundGenerator interface {
	ListReceipts(tenantID string, q warehouse.ListQuery) []warehouse.Receipt
	CreateReceipt(tenantID, userID string, in warehouse.ReceiptInput) warehouse.Receipt
	CreatePutawayTask(tenantID, userID string, in warehouse.PutawayInput) warehouse.PutawayTask
}

type OutboundGenerator interface {
	ListOrders(tenantID string, q warehouse.ListQuery) []warehouse.Order
	ShipOrder(tenantID, userID string, in warehouse.ShipmentInput) warehouse.Shipment
}

type InventoryGenerator interface {
	ListStock(tenantID string, q warehouse.ListQuery) []warehouse.StockItem
	CreateAdjustment(tenantID, userID string, in warehouse.AdjustmentInput) warehouse.Adjustment
	TraceLot(tenantID, lotID string) []warehouse.TraceEvent
}

type ReturnsGenerator interface {
	ListReturns(tenantID string, q warehouse.ListQuery) []warehouse.Return
	CreateReturn(tenantID, userID string, in warehouse.ReturnInput) warehouse.Return
}

// WarehouseGenerator is everything the warehouse routes need.
type WarehouseGenerator interface {
	InboundGenerator
	OutboundGenerator
	InventoryGenerator
	ReturnsGenerator
}

type MetricsSnapshotter interface {
	Snapshot() metrics.Snapshot
}
