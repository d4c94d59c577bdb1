package warehouse

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 10

	returnStatusOpen     = "open"
	putawayStatusPending = "pending"
	shipmentStatus       = "in_transit"
	stagingLocation      = "DOCK-01"
)

type catalogEntry struct {
	sku         string
	description string
}

var (
	catalog = []catalogEntry{
		{"SKU-1001", "Pallet wrap 500mm"},
		{"SKU-1002", "Corrugated box 40x30x30"},
		{"SKU-1003", "Thermal label roll"},
		{"SKU-2001", "Hand scanner battery"},
		{"SKU-2002", "Barcode printer ribbon"},
		{"SKU-3001", "Safety gloves (L)"},
	}
	suppliers     = []string{"Northwind Traders", "Contoso Supply", "Fabrikam Logistics"}
	customers     = []string{"Adventure Works", "Tailspin Toys", "Wide World Importers", "Proseware"}
	locations     = []string{"A-01-01", "A-01-02", "B-03-04", "C-10-02", "D-02-07"}
	orderStatuses = []OrderStatus{OrderStatusPending, OrderStatusAllocated, OrderStatusPicked}
	traceSteps    = []string{"received", "putaway", "picked", "shipped"}
)

// Generator fabricates tenant-scoped warehouse records. Nothing is stored;
// every call returns fresh data stamped with the caller's tenant.
type Generator struct {
	now   func() time.Time
	newID func() string
}

type Option func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDs overrides the identifier source.
func WithIDs(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) ListReceipts(tenantID string, q ListQuery) []Receipt {
	n := limitOf(q)
	now := g.now()
	out := make([]Receipt, 0, n)
	for i := 0; i < n; i++ {
		status := ReceiptStatusReceived
		if i%3 == 0 {
			status = ReceiptStatusExpected
		}
		if q.Status != "" && string(status) != q.Status {
			continue
		}
		out = append(out, Receipt{
			ID:         g.newID(),
			TenantID:   tenantID,
			Reference:  fmt.Sprintf("ASN-%05d", 1000+i),
			Supplier:   suppliers[i%len(suppliers)],
			Status:     status,
			Lines:      g.lines(i, 2, q.SKU),
			ReceivedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return out
}

func (g *Generator) CreateReceipt(tenantID, userID string, in ReceiptInput) Receipt {
	ref := in.Reference
	if ref == "" {
		ref = "ASN-" + strings.ToUpper(g.newID()[:8])
	}
	return Receipt{
		ID:         g.newID(),
		TenantID:   tenantID,
		Reference:  ref,
		Supplier:   in.Supplier,
		Status:     ReceiptStatusReceived,
		Lines:      toLines(in.Lines),
		CreatedBy:  userID,
		ReceivedAt: g.now(),
	}
}

func (g *Generator) ListOrders(tenantID string, q ListQuery) []Order {
	n := limitOf(q)
	now := g.now()
	out := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		status := orderStatuses[i%len(orderStatuses)]
		if q.Status != "" && string(status) != q.Status {
			continue
		}
		out = append(out, Order{
			ID:        g.newID(),
			TenantID:  tenantID,
			Customer:  customers[i%len(customers)],
			Status:    status,
			Lines:     g.lines(i, 3, q.SKU),
			CreatedAt: now.Add(-time.Duration(i*30) * time.Minute),
		})
	}
	return out
}

func (g *Generator) ShipOrder(tenantID, userID string, in ShipmentInput) Shipment {
	tracking := in.TrackingNumber
	if tracking == "" {
		tracking = strings.ToUpper(strings.ReplaceAll(g.newID(), "-", ""))[:18]
	}
	return Shipment{
		ID:             g.newID(),
		TenantID:       tenantID,
		OrderID:        in.OrderID,
		Carrier:        in.Carrier,
		TrackingNumber: tracking,
		Status:         shipmentStatus,
		ShippedBy:      userID,
		ShippedAt:      g.now(),
	}
}

func (g *Generator) ListStock(tenantID string, q ListQuery) []StockItem {
	n := limitOf(q)
	out := make([]StockItem, 0, n)
	for i := 0; i < n; i++ {
		entry := catalog[i%len(catalog)]
		if q.SKU != "" && !strings.EqualFold(entry.sku, q.SKU) {
			continue
		}
		onHand := 40 + (i*37)%260
		out = append(out, StockItem{
			ID:          g.newID(),
			TenantID:    tenantID,
			SKU:         entry.sku,
			Description: entry.description,
			Location:    locations[i%len(locations)],
			LotID:       lotID(i),
			OnHand:      onHand,
			Allocated:   onHand / 4,
		})
	}
	return out
}

func (g *Generator) CreateAdjustment(tenantID, userID string, in AdjustmentInput) Adjustment {
	return Adjustment{
		ID:         g.newID(),
		TenantID:   tenantID,
		SKU:        in.SKU,
		Location:   in.Location,
		Delta:      in.Delta,
		Reason:     in.Reason,
		AdjustedBy: userID,
		AdjustedAt: g.now(),
	}
}

func (g *Generator) CreatePutawayTask(tenantID, userID string, in PutawayInput) PutawayTask {
	to := in.ToLocation
	if to == "" {
		to = locations[len(in.SKU)%len(locations)]
	}
	return PutawayTask{
		ID:           g.newID(),
		TenantID:     tenantID,
		ReceiptID:    in.ReceiptID,
		SKU:          in.SKU,
		Quantity:     in.Quantity,
		FromLocation: stagingLocation,
		ToLocation:   to,
		Status:       putawayStatusPending,
		AssignedTo:   userID,
		CreatedAt:    g.now(),
	}
}

func (g *Generator) ListReturns(tenantID string, q ListQuery) []Return {
	n := limitOf(q)
	now := g.now()
	out := make([]Return, 0, n)
	for i := 0; i < n; i++ {
		if q.Status != "" && q.Status != returnStatusOpen {
			break
		}
		out = append(out, Return{
			ID:        g.newID(),
			TenantID:  tenantID,
			OrderID:   g.newID(),
			Reason:    "damaged in transit",
			Status:    returnStatusOpen,
			Lines:     g.lines(i, 1, q.SKU),
			CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}
	return out
}

func (g *Generator) CreateReturn(tenantID, userID string, in ReturnInput) Return {
	return Return{
		ID:        g.newID(),
		TenantID:  tenantID,
		OrderID:   in.OrderID,
		Reason:    in.Reason,
		Status:    returnStatusOpen,
		Lines:     toLines(in.Lines),
		CreatedBy: userID,
		CreatedAt: g.now(),
	}
}

// TraceLot returns the movement history of a lot, oldest first.
func (g *Generator) TraceLot(tenantID, lot string) []TraceEvent {
	now := g.now()
	out := make([]TraceEvent, 0, len(traceSteps))
	for i, step := range traceSteps {
		out = append(out, TraceEvent{
			ID:         g.newID(),
			TenantID:   tenantID,
			LotID:      lot,
			Type:       step,
			Location:   locations[i%len(locations)],
			Reference:  fmt.Sprintf("%s-%s", strings.ToUpper(step[:3]), lot),
			OccurredAt: now.Add(-time.Duration(len(traceSteps)-i) * 6 * time.Hour),
		})
	}
	return out
}

func (g *Generator) lines(seed, count int, sku string) []Line {
	out := make([]Line, 0, count)
	for j := 0; j < count; j++ {
		entry := catalog[(seed+j)%len(catalog)]
		if sku != "" {
			entry.sku = sku
		}
		out = append(out, Line{
			SKU:      entry.sku,
			Quantity: 1 + (seed*7+j*3)%24,
			LotID:    lotID(seed + j),
		})
	}
	return out
}

func toLines(in []LineInput) []Line {
	out := make([]Line, 0, len(in))
	for _, l := range in {
		out = append(out, Line{SKU: l.SKU, Quantity: l.Quantity, LotID: l.LotID})
	}
	return out
}

func lotID(i int) string {
	return fmt.Sprintf("LOT-%04d", 2400+i)
}

func limitOf(q ListQuery) int {
	if q.Limit <= 0 {
		return DefaultListLimit
	}
	return q.Limit
}
