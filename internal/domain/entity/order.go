package entity

import "time"

// OrderStatus is the backend's order progression. Customers only read
// it; sellers advance it explicitly through the seller surface.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// orderProgression is the forward path; cancelled and refunded are
// terminal side branches reachable from any non-terminal status.
var orderProgression = map[OrderStatus]OrderStatus{
	OrderPending:    OrderConfirmed,
	OrderConfirmed:  OrderProcessing,
	OrderProcessing: OrderShipped,
	OrderShipped:    OrderDelivered,
}

// Terminal reports whether no further status change is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderRefunded
}

// CanAdvanceTo reports whether a seller may move an order from s to next.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderCancelled || next == OrderRefunded {
		return true
	}

	return orderProgression[s] == next
}

// Order mirrors the backend's order resource.
type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"status"`
	Items       []OrderItem `json:"items"`
	Total       float64     `json:"total"`
	Subtotal    float64     `json:"subtotal"`

	ShippingAddress ShippingAddress `json:"shipping_address"`

	TrackingNumber string     `json:"tracking_number,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is one product line frozen at purchase time.
type OrderItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ShippingAddress is the fixed set of address fields collected by the
// checkout shipping step.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}
