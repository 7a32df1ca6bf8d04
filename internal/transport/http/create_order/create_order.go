package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/service/models/orderitem"
	"github.com/micromart/orders/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, items []orderitem.CreateItem) (*order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity"  validate:"gt=0"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	Items []itemInCreateOrderRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating create order request", "error", err)

		return
	}

	items := make([]orderitem.CreateItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = orderitem.CreateItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	created, err := service.CreateOrder(r.Context(), items)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error writing response for create order", "error", err)
	}
}
