package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// GetOrder handles the get order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	ord, err := service.GetOrder(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting order", "error", err, "order_id", id)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ord); err != nil {
		slog.Error("Error writing response for get order", "error", err)
	}
}
