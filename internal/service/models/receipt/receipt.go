package receipt

import "time"

// Receipt holds the payment receipt of an order, created on payment
// confirmation. One receipt per order.
type Receipt struct {
	OrderID    string    `json:"orderId"`
	ReceiptURL string    `json:"receiptUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
