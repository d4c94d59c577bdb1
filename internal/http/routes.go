package http

import (
	"wms-api/internal/auth"
	"wms-api/internal/http/handler"

	"github.com/labstack/echo/v4"
)

const (
	RoleSuperAdmin   = "superadmin"
	RoleStoreManager = "storemanager"
	RoleReceiver     = "receiver"
	RolePicker       = "picker"
	RoleAuditor      = "auditor"

	PermInboundWrite    = "inbound:write"
	PermOutboundShip    = "outbound:ship"
	PermInventoryRead   = "inventory:read"
	PermInventoryAdjust = "inventory:adjust"
	PermPutawayWrite    = "putaway:write"
	PermRMAWrite        = "rma:write"
	PermTraceRead       = "trace:read"
)

type routeHandlers struct {
	session   *handler.SessionHandler
	warehouse *handler.WarehouseHandler
	admin     *handler.AdminHandler
}

// registerRoutes declares every authenticated route with its guards.
// Role guards run before permission guards.
func registerRoutes(v1 *echo.Group, h routeHandlers) {
	roles := auth.RequireRoles
	perms := auth.RequirePermissions

	v1.GET("/me", h.session.Me)

	inbound := v1.Group("/inbound", roles(RoleSuperAdmin, RoleStoreManager, RoleReceiver))
	inbound.GET("/receipts", h.warehouse.ListReceipts)
	inbound.POST("/receipts", h.warehouse.CreateReceipt, perms(PermInboundWrite))

	outbound := v1.Group("/outbound")
	outbound.GET("/orders", h.warehouse.ListOrders, roles(RoleSuperAdmin, RoleStoreManager, RolePicker))
	outbound.POST("/orders/:orderId/ship", h.warehouse.ShipOrder,
		roles(RoleSuperAdmin, RoleStoreManager), perms(PermOutboundShip))

	inventory := v1.Group("/inventory")
	inventory.GET("/items", h.warehouse.ListStock)
	inventory.POST("/adjustments", h.warehouse.CreateAdjustment,
		roles(RoleSuperAdmin, RoleStoreManager), perms(PermInventoryRead, PermInventoryAdjust))

	v1.POST("/putaway/tasks", h.warehouse.CreatePutawayTask,
		roles(RoleSuperAdmin, RoleStoreManager, RoleReceiver), perms(PermPutawayWrite))

	rma := v1.Group("/rma")
	rma.GET("/returns", h.warehouse.ListReturns, roles(RoleSuperAdmin, RoleStoreManager, RoleAuditor))
	rma.POST("/returns", h.warehouse.CreateReturn, roles(RoleSuperAdmin, RoleStoreManager), perms(PermRMAWrite))

	v1.GET("/trace/lots/:lotId", h.warehouse.TraceLot, roles(RoleSuperAdmin, RoleAuditor), perms(PermTraceRead))

	v1.GET("/admin/metrics", h.admin.Metrics, roles(RoleSuperAdmin))
}
