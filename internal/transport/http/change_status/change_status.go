package changestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	ChangeStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)
}

// changeStatusRequest represents a change order status request.
type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus handles the change order status request.
func ChangeStatus(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for change status", "error", err)

		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating change status request", "error", err)

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing order status", "error", err, "status", req.Status)

		return
	}

	updated, err := service.ChangeStatus(r.Context(), id, status)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error changing order status", "error", err, "order_id", id)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error writing response for change status", "error", err)
	}
}
