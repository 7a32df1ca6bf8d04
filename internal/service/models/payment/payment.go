package payment

import (
	"github.com/micromart/orders/internal/service/models/currency"
)

// SessionItem is one priced line forwarded to the payment service. Prices are
// passed verbatim from the stored order lines so the checkout total always
// matches the persisted order total.
type SessionItem struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

// SessionRequest is the payload of a checkout-session creation call.
type SessionRequest struct {
	OrderID  string            `json:"orderId"`
	Currency currency.Currency `json:"currency"`
	Items    []SessionItem     `json:"items"`
}

// Session is the checkout session descriptor returned by the payment service.
type Session struct {
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// PaidEvent is the payment-confirmation event emitted by the payment service.
// Delivery is assumed at-least-once; applying it is last-write-wins.
type PaidEvent struct {
	OrderID         string `json:"orderId"`
	StripePaymentID string `json:"stripePaymentId"`
	ReceiptURL      string `json:"receiptUrl"`
}
