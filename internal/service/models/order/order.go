package order

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/micromart/orders/internal/service/models/orderitem"
)

// Status represents the lifecycle status of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDelivered Status = "DELIVERED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPending.String():
		return StatusPending, nil
	case StatusConfirmed.String():
		return StatusConfirmed, nil
	case StatusDelivered.String():
		return StatusDelivered, nil
	case StatusPaid.String():
		return StatusPaid, nil
	case StatusCancelled.String():
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order represents an order in the system.
// TotalAmountCents and TotalItems are snapshots taken at creation time and
// never recomputed from later catalog prices.
type Order struct {
	ID               string                `json:"id"`
	Status           Status                `json:"status"`
	TotalItems       int                   `json:"totalItems"`
	TotalAmountCents int64                 `json:"totalAmountCents"`
	Paid             bool                  `json:"paid"`
	PaidAt           *time.Time            `json:"paidAt,omitempty"`
	StripeChargeID   *string               `json:"stripeChargeId,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	OrderItems       []orderitem.OrderItem `json:"orderItems"`
}
