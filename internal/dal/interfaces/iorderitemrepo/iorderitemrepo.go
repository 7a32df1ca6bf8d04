package iorderitemrepo

import (
	"context"

	"github.com/micromart/orders/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for the order item postgres repository.
type IOrderItemRepository interface {
	// BulkInsert inserts multiple order items and returns them with IDs.
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)

	// ListByOrderID retrieves all items belonging to an order.
	ListByOrderID(ctx context.Context, orderID string) ([]orderitem.OrderItem, error)
}
