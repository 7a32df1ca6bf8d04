package iorderrepo

import (
	"context"
	"time"

	"github.com/micromart/orders/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	// Insert persists a new order and returns it with generated fields.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// GetByID retrieves a single order without its items.
	GetByID(ctx context.Context, id string) (*order.Order, error)

	// Query retrieves orders based on filter criteria.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// Count returns the number of orders matching the filter, ignoring
	// limit and offset.
	Count(ctx context.Context, filter *order.QueryOrdersModel) (int64, error)

	// UpdateStatus overwrites the order status and returns the updated row.
	UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)

	// MarkPaid sets the paid fields and PAID status, returning the updated row.
	MarkPaid(ctx context.Context, id string, chargeID string, paidAt time.Time) (*order.Order, error)
}
