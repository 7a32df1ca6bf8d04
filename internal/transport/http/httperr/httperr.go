package httperr

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/micromart/orders/internal/service/apperr"
)

// Write reports a failure as the structured {status, message} envelope.
// Errors without an explicit status default to 400 with the raw error text.
func Write(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)

	if err := json.NewEncoder(w).Encode(appErr); err != nil {
		slog.Error("Error writing error response", "error", err)
	}
}
