package changestatus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/micromart/orders/internal/service/models/order"
)

type stubService struct {
	gotID     string
	gotStatus order.Status
	order     *order.Order
	err       error
}

func (s *stubService) ChangeStatus(_ context.Context, id string, status order.Status) (*order.Order, error) {
	s.gotID = id
	s.gotStatus = status

	return s.order, s.err
}

func serve(svc *stubService, target, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Patch("/api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		ChangeStatus(w, r, svc)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body)))

	return rec
}

func TestChangeStatusReturnsUpdatedOrder(t *testing.T) {
	svc := &stubService{order: &order.Order{ID: "o1", Status: order.StatusCancelled}}

	rec := serve(svc, "/api/orders/o1/status", `{"status":"CANCELLED"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotID != "o1" || svc.gotStatus != order.StatusCancelled {
		t.Fatalf("unexpected service call: id=%q status=%q", svc.gotID, svc.gotStatus)
	}

	var body order.Order
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != order.StatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", body.Status)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/api/orders/o1/status", `{"status":"SHIPPED"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.gotID != "" {
		t.Fatal("service must not be called for an unknown status")
	}
}

func TestChangeStatusRejectsMissingStatus(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/api/orders/o1/status", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
