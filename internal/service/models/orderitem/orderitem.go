package orderitem

import (
	"time"
)

// OrderItem represents a line within an order. PriceCents is the unit price
// snapshot captured from the catalog at order-creation time. ProductName is
// decoration joined from the catalog for responses and is not stored.
type OrderItem struct {
	ID          int64     `json:"id"`
	OrderID     string    `json:"orderId"`
	ProductID   int64     `json:"productId"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"priceCents"`
	ProductName string    `json:"name,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateItem is the inbound shape of a requested order line.
type CreateItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
