package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, page, limit int, status *order.Status) (*order.Page, error)
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	page := 1
	if pageStr := query.Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil {
			page = parsed
		}
	}

	limit := 10
	if limitStr := query.Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	var status *order.Status
	if statusStr := query.Get("status"); statusStr != "" {
		parsed, err := order.ParseStatus(statusStr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			slog.Error("Error parsing status filter", "error", err, "status", statusStr)

			return
		}
		status = &parsed
	}

	result, err := service.GetOrders(r.Context(), page, limit, status)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Error writing response for list orders", "error", err)
	}
}
