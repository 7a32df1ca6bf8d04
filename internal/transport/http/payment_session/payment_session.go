package paymentsession

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/service/models/payment"
	"github.com/micromart/orders/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	CreatePaymentSession(ctx context.Context, ord *order.Order) (*payment.Session, error)
}

// CreatePaymentSession handles the payment session creation request. The
// order is loaded decorated so the session line items carry product names.
func CreatePaymentSession(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	ord, err := service.GetOrder(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error loading order for payment session", "error", err, "order_id", id)

		return
	}

	session, err := service.CreatePaymentSession(r.Context(), ord)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating payment session", "error", err, "order_id", id)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(session); err != nil {
		slog.Error("Error writing response for payment session", "error", err)
	}
}
