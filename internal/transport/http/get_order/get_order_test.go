package getorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/micromart/orders/internal/service/apperr"
	"github.com/micromart/orders/internal/service/models/order"
)

type stubService struct {
	gotID string
	order *order.Order
	err   error
}

func (s *stubService) GetOrder(_ context.Context, id string) (*order.Order, error) {
	s.gotID = id

	return s.order, s.err
}

func serve(svc *stubService, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetOrder(w, r, svc)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestGetOrderReturnsOrder(t *testing.T) {
	svc := &stubService{order: &order.Order{ID: "o1", Status: order.StatusConfirmed}}

	rec := serve(svc, "/api/orders/o1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotID != "o1" {
		t.Fatalf("expected id o1 passed to service, got %q", svc.gotID)
	}

	var body order.Order
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID != "o1" || body.Status != order.StatusConfirmed {
		t.Fatalf("unexpected response body: %+v", body)
	}
}

func TestGetOrderNotFoundEnvelope(t *testing.T) {
	svc := &stubService{err: apperr.OrderNotFound("missing")}

	rec := serve(svc, "/api/orders/missing")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var envelope struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if envelope.Status != 404 || envelope.Message != "order with id missing not found" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}
