package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/micromart/orders/internal/service/apperr"
	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/service/models/orderitem"
)

type stubService struct {
	gotItems []orderitem.CreateItem
	order    *order.Order
	err      error
}

func (s *stubService) CreateOrder(_ context.Context, items []orderitem.CreateItem) (*order.Order, error) {
	s.gotItems = items

	return s.order, s.err
}

func TestCreateOrderReturnsCreated(t *testing.T) {
	svc := &stubService{order: &order.Order{
		ID:               "o1",
		Status:           order.StatusPending,
		TotalItems:       2,
		TotalAmountCents: 20,
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"items":[{"productId":1,"quantity":2}]}`))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.gotItems) != 1 || svc.gotItems[0].ProductID != 1 || svc.gotItems[0].Quantity != 2 {
		t.Fatalf("unexpected items passed to service: %+v", svc.gotItems)
	}

	var body order.Order
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID != "o1" || body.TotalAmountCents != 20 {
		t.Fatalf("unexpected response body: %+v", body)
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"items":[]}`))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.gotItems != nil {
		t.Fatal("service must not be called on invalid input")
	}
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"items":[{"productId":1,"quantity":0}]}`))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderWritesErrorEnvelope(t *testing.T) {
	svc := &stubService{err: apperr.ProductsNotFound([]int64{42})}

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"items":[{"productId":42,"quantity":1}]}`))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if envelope.Status != 400 || envelope.Message == "" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}
