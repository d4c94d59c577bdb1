package warehouse

import "time"

type ReceiptStatus string

const (
	ReceiptStatusExpected ReceiptStatus = "expected"
	ReceiptStatusReceived ReceiptStatus = "received"
	ReceiptStatusClosed   ReceiptStatus = "closed"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAllocated OrderStatus = "allocated"
	OrderStatusPicked    OrderStatus = "picked"
	OrderStatusShipped   OrderStatus = "shipped"
)

type Line struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	LotID    string `json:"lotId,omitempty"`
}

type Receipt struct {
	ID         string        `json:"id"`
	TenantID   string        `json:"tenantId"`
	Reference  string        `json:"reference"`
	Supplier   string        `json:"supplier"`
	Status     ReceiptStatus `json:"status"`
	Lines      []Line        `json:"lines"`
	CreatedBy  string        `json:"createdBy,omitempty"`
	ReceivedAt time.Time     `json:"receivedAt"`
}

type Order struct {
	ID        string      `json:"id"`
	TenantID  string      `json:"tenantId"`
	Customer  string      `json:"customer"`
	Status    OrderStatus `json:"status"`
	Lines     []Line      `json:"lines"`
	CreatedAt time.Time   `json:"createdAt"`
}

type Shipment struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenantId"`
	OrderID        string    `json:"orderId"`
	Carrier        string    `json:"carrier"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	ShippedBy      string    `json:"shippedBy"`
	ShippedAt      time.Time `json:"shippedAt"`
}

type StockItem struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Location    string `json:"location"`
	LotID       string `json:"lotId"`
	OnHand      int    `json:"onHand"`
	Allocated   int    `json:"allocated"`
}

type Adjustment struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	SKU        string    `json:"sku"`
	Location   string    `json:"location"`
	Delta      int       `json:"delta"`
	Reason     string    `json:"reason"`
	AdjustedBy string    `json:"adjustedBy"`
	AdjustedAt time.Time `json:"adjustedAt"`
}

type PutawayTask struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	ReceiptID    string    `json:"receiptId"`
	SKU          string    `json:"sku"`
	Quantity     int       `json:"quantity"`
	FromLocation string    `json:"fromLocation"`
	ToLocation   string    `json:"toLocation"`
	Status       string    `json:"status"`
	AssignedTo   string    `json:"assignedTo"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Return struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	OrderID   string    `json:"orderId"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	Lines     []Line    `json:"lines"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type TraceEvent struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	LotID      string    `json:"lotId"`
	Type       string    `json:"type"`
	Location   string    `json:"location"`
	Reference  string    `json:"reference"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Inputs carry validation tags; they are bound straight from requests.

type LineInput struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=100000"`
	LotID    string `json:"lotId" validate:"omitempty,max=64"`
}

type ReceiptInput struct {
	Supplier  string      `json:"supplier" validate:"required,max=128"`
	Reference string      `json:"reference" validate:"omitempty,max=64"`
	Lines     []LineInput `json:"lines" validate:"required,min=1,max=100,dive"`
}

type ShipmentInput struct {
	OrderID        string `param:"orderId" json:"-" validate:"required,uuid"`
	Carrier        string `json:"carrier" validate:"required,oneof=ups fedex dhl usps local"`
	TrackingNumber string `json:"trackingNumber" validate:"omitempty,alphanum,max=64"`
}

type AdjustmentInput struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Location string `json:"location" validate:"required,max=32"`
	Delta    int    `json:"delta" validate:"required,min=-100000,max=100000"`
	Reason   string `json:"reason" validate:"required,oneof=damage count-correction shrinkage found"`
}

type PutawayInput struct {
	ReceiptID  string `json:"receiptId" validate:"required,uuid"`
	SKU        string `json:"sku" validate:"required,max=64"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=100000"`
	ToLocation string `json:"toLocation" validate:"omitempty,max=32"`
}

type ReturnInput struct {
	OrderID string      `json:"orderId" validate:"required,uuid"`
	Reason  string      `json:"reason" validate:"required,max=256"`
	Lines   []LineInput `json:"lines" validate:"required,min=1,max=100,dive"`
}

// ListQuery is shared by the list endpoints.
type ListQuery struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Status string `query:"status" validate:"omitempty,oneof=pending allocated picked shipped expected received closed open approved rejected"`
	SKU    string `query:"sku" validate:"omitempty,max=64"`
}

type TraceQuery struct {
	LotID string `param:"lotId" validate:"required,max=64"`
}
